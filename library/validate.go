package library

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
)

var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FieldErrors maps a form field to its validation message. Validation runs
// before any network call; a non-empty map blocks submission.
type FieldErrors map[string]string

// Error joins the field messages into one line, fields in stable order.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, fe[f]))
	}
	return strings.Join(parts, "; ")
}

// Ok reports whether the form passed validation.
func (fe FieldErrors) Ok() bool { return len(fe) == 0 }

// ValidateBook checks a book form before create or update.
func ValidateBook(b Book) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(b.Title) == "" {
		fe["title"] = "title is required"
	}
	if strings.TrimSpace(b.Author) == "" {
		fe["author"] = "author is required"
	}
	if b.Price < 0 {
		fe["price"] = "price cannot be negative"
	} else if math.Abs(b.Price*100-math.Round(b.Price*100)) > 1e-9 {
		fe["price"] = "price must have at most two decimals"
	}
	if b.Quantity < 0 {
		fe["quantity"] = "quantity cannot be negative"
	}
	if b.CopiesAvailable < 0 {
		fe["copiesAvailable"] = "copies available cannot be negative"
	} else if b.CopiesAvailable > b.Quantity {
		fe["copiesAvailable"] = "copies available cannot exceed quantity"
	}
	return fe
}

// ValidateReader checks a reader form. All contact fields are required.
func ValidateReader(r Reader) FieldErrors {
	fe := FieldErrors{}
	required := map[string]string{
		"name":    r.Name,
		"email":   r.Email,
		"phone":   r.Phone,
		"nic":     r.NIC,
		"address": r.Address,
	}
	for field, val := range required {
		if strings.TrimSpace(val) == "" {
			fe[field] = field + " is required"
		}
	}
	if fe["email"] == "" && !emailRE.MatchString(r.Email) {
		fe["email"] = "invalid email format"
	}
	if r.Status != "" && r.Status != ReaderActive && r.Status != ReaderInactive {
		fe["status"] = "status must be ACTIVE or INACTIVE"
	}
	if r.MembershipType != "" && r.MembershipType != MembershipStandard && r.MembershipType != MembershipPremium {
		fe["membershipType"] = "membership must be STANDARD or PREMIUM"
	}
	return fe
}

// ValidateLending checks a lending form: a reader, at least one book, and a
// due date after the borrow date.
func ValidateLending(l Lending) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(l.ReaderID) == "" {
		fe["readerId"] = "reader is required"
	}
	if len(l.Books) == 0 {
		fe["books"] = "a lending must reference at least one book"
	}
	borrow, errB := time.Parse(time.RFC3339, l.BorrowDate)
	due, errD := time.Parse(time.RFC3339, l.DueDate)
	switch {
	case errB != nil:
		fe["borrowDate"] = "invalid borrow date"
	case errD != nil:
		fe["dueDate"] = "invalid due date"
	case !due.After(borrow):
		fe["dueDate"] = "due date must be after borrow date"
	}
	if l.Status == LendingReturned && l.ReturnDate == "" {
		fe["returnDate"] = "a returned lending needs a return date"
	}
	return fe
}

// ValidateUser checks a user form. Password is required when creating
// (isUpdate false); on update an empty password means keep current.
func ValidateUser(u User, isUpdate bool) FieldErrors {
	fe := FieldErrors{}
	if strings.TrimSpace(u.Name) == "" {
		fe["name"] = "name is required"
	}
	if !emailRE.MatchString(u.Email) {
		fe["email"] = "invalid email format"
	}
	if u.Role != RoleAdmin && u.Role != RoleStaff {
		fe["role"] = "role must be admin or staff"
	}
	if !isUpdate && strings.TrimSpace(u.Password) == "" {
		fe["password"] = "password is required"
	}
	return fe
}
