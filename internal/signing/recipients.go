package signing

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrRecipientNotFound is returned when a recipient id is unknown.
var ErrRecipientNotFound = errors.New("recipient not found")

// Recipient is a named party eligible to be assigned fields. Fields
// reference recipients by email, not by ownership: deleting a recipient
// leaves any field referencing that email untouched.
type Recipient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Designation string `json:"designation,omitempty"`
}

// RecipientList is the ordered set of recipients for a document session.
type RecipientList struct {
	mu         sync.RWMutex
	recipients []Recipient
}

// NewRecipientList creates an empty recipient list.
func NewRecipientList() *RecipientList {
	return &RecipientList{}
}

// Add validates and appends a recipient, returning it with a fresh id.
func (l *RecipientList) Add(name, email, designation string) (Recipient, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return Recipient{}, fmt.Errorf("recipient name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return Recipient{}, fmt.Errorf("invalid recipient email: %q", email)
	}
	r := Recipient{
		ID:          uuid.NewString(),
		Name:        name,
		Email:       email,
		Designation: strings.TrimSpace(designation),
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recipients = append(l.recipients, r)
	return r, nil
}

// Remove deletes a recipient by id. It deliberately does not cascade to
// fields referencing the recipient's email.
func (l *RecipientList) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.recipients {
		if l.recipients[i].ID == id {
			l.recipients = append(l.recipients[:i], l.recipients[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrRecipientNotFound, id)
}

// List returns the recipients in insertion order. The slice is a copy.
func (l *RecipientList) List() []Recipient {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Recipient, len(l.recipients))
	copy(out, l.recipients)
	return out
}

// Len returns the number of recipients.
func (l *RecipientList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.recipients)
}

// FindByEmail returns the first recipient matching the email
// case-insensitively.
func (l *RecipientList) FindByEmail(email string) (Recipient, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, r := range l.recipients {
		if EmailsEqual(r.Email, email) {
			return r, true
		}
	}
	return Recipient{}, false
}
