// Package entities contains core domain data structures.
package entities

import (
	"errors"
	"regexp"
	"slices"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/ersonp/mens/internal/domain"
)

// Accepted id shapes.
const (
	UUIDLength   = 36
	NanoIDLength = 21
)

var nanoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{21}$`)

// Note is a single markdown note together with its version lineage.
//
// History holds every superseded version, oldest first. The full lineage of a
// note is History followed by Version.
type Note struct {
	ID      string   `yaml:"id" json:"id"`
	Content string   `yaml:"content" json:"content"`
	CTime   int64    `yaml:"cTime" json:"cTime"`
	MTime   int64    `yaml:"mTime" json:"mTime"`
	Dropped bool     `yaml:"dropped,omitempty" json:"dropped,omitempty"`
	DTime   int64    `yaml:"dTime,omitempty" json:"dTime,omitempty"`
	Version string   `yaml:"version" json:"version"`
	History []string `yaml:"history" json:"history"`
}

// NewNote builds an unversioned note after validating id and content.
// Timestamps and version are assigned by the versioning engine.
func NewNote(id, content string) (*Note, error) {
	n := &Note{
		ID:      id,
		Content: content,
		History: []string{},
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks the id shape and that content is present.
func (n Note) Validate() error {
	err := validation.ValidateStruct(&n,
		validation.Field(&n.ID,
			validation.Required,
			validation.When(len(n.ID) == UUIDLength, is.UUID).
				Else(validation.Match(nanoIDPattern).Error("must be a 36-character UUID or a 21-character nanoid")),
		),
		validation.Field(&n.Content, validation.Required),
	)
	if err != nil {
		return toValidationError(err)
	}
	return nil
}

// Lineage returns History followed by Version as a fresh slice.
func (n Note) Lineage() []string {
	lineage := make([]string, 0, len(n.History)+1)
	lineage = append(lineage, n.History...)
	if n.Version != "" {
		lineage = append(lineage, n.Version)
	}
	return lineage
}

// Clone returns a deep copy that shares no memory with n.
func (n Note) Clone() Note {
	c := n
	c.History = slices.Clone(n.History)
	if c.History == nil {
		c.History = []string{}
	}
	return c
}

// ValidateID reports whether id has an accepted shape.
func ValidateID(id string) error {
	return Note{ID: id, Content: "-"}.Validate()
}

// Millis converts t to epoch milliseconds, the unit used for all note timestamps.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts epoch milliseconds back to a time.Time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

func toValidationError(err error) error {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return &domain.ValidationError{Message: err.Error()}
	}

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	first := fields[0]
	return &domain.ValidationError{Field: first, Message: errs[first].Error()}
}
