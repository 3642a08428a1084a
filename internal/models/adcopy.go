package models

type AdCopyVariant struct {
	ID       string   `json:"id"`
	Platform Platform `json:"platform"`
	Content  string   `json:"content"`
}
