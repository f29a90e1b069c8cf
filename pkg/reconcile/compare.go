package reconcile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shortdoom/audit-compare/pkg/ratelimit"
	"github.com/shortdoom/audit-compare/pkg/storage"
)

// DefaultBufferSize is the chunk size used when streaming file
// contents for comparison.
const DefaultBufferSize = 64 * 1024

// comparator decides byte-for-byte equality of two files without
// loading either into memory whole.
type comparator struct {
	bufferSize int
	bufferPool *sync.Pool
	limiter    *ratelimit.Limiter
}

func newComparator(bufferSize int, limiter *ratelimit.Limiter) *comparator {
	if bufferSize < 4096 {
		bufferSize = DefaultBufferSize
	}
	return &comparator{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
		limiter: limiter,
	}
}

// equal streams both files and compares chunk by chunk. A size
// mismatch settles inequality without reading content; equality is
// only ever declared after the full byte-for-byte pass.
func (c *comparator) equal(ctx context.Context, left, right storage.Tree, leftPath, rightPath string) (bool, error) {
	leftInfo, err := left.Stat(ctx, leftPath)
	if err != nil {
		return false, fmt.Errorf("stat left %s: %w", leftPath, err)
	}
	rightInfo, err := right.Stat(ctx, rightPath)
	if err != nil {
		return false, fmt.Errorf("stat right %s: %w", rightPath, err)
	}
	if leftInfo.Size != rightInfo.Size {
		return false, nil
	}

	leftFile, err := left.Read(ctx, leftPath)
	if err != nil {
		return false, fmt.Errorf("open left %s: %w", leftPath, err)
	}
	defer leftFile.Close()

	rightFile, err := right.Read(ctx, rightPath)
	if err != nil {
		return false, fmt.Errorf("open right %s: %w", rightPath, err)
	}
	defer rightFile.Close()

	leftReader := c.limiter.Reader(ctx, leftFile)
	rightReader := c.limiter.Reader(ctx, rightFile)

	leftBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(leftBufPtr)
	leftBuf := *leftBufPtr

	rightBufPtr := c.bufferPool.Get().(*[]byte)
	defer c.bufferPool.Put(rightBufPtr)
	rightBuf := *rightBufPtr

	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
		}

		leftN, leftErr := io.ReadFull(leftReader, leftBuf)
		rightN, rightErr := io.ReadFull(rightReader, rightBuf)

		if leftN != rightN {
			return false, nil
		}
		if leftN > 0 && !bytes.Equal(leftBuf[:leftN], rightBuf[:rightN]) {
			return false, nil
		}

		leftDone := leftErr == io.EOF || leftErr == io.ErrUnexpectedEOF
		rightDone := rightErr == io.EOF || rightErr == io.ErrUnexpectedEOF

		switch {
		case leftDone && rightDone:
			return true, nil
		case leftDone != rightDone:
			return false, nil
		}

		if leftErr != nil {
			return false, fmt.Errorf("read left %s: %w", leftPath, leftErr)
		}
		if rightErr != nil {
			return false, fmt.Errorf("read right %s: %w", rightPath, rightErr)
		}
	}
}
