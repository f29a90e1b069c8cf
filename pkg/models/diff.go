package models

// DiffPair holds the decoded content of two files to be aligned.
// It is immutable once constructed from file content at classification
// time. A pair whose content cannot be decoded as text is marked
// Undecodable and rendered as a placeholder notice instead of a line
// alignment; this is a classification outcome, not an error.
type DiffPair struct {
	// LeftLabel identifies the left file in rendered output
	LeftLabel string

	// RightLabel identifies the right file in rendered output
	RightLabel string

	// LeftLines is the ordered line sequence of the left file
	LeftLines []string

	// RightLines is the ordered line sequence of the right file
	RightLines []string

	// Undecodable marks content that is not valid text
	Undecodable bool
}
