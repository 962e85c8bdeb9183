package ports

// PlainTextRenderer turns note markdown into the plain text used for search.
type PlainTextRenderer interface {
	PlainText(markdown string) string
}
