package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validBook() Book {
	return Book{Title: "1984", Author: "George Orwell", Price: 12.99, Quantity: 5, CopiesAvailable: 5}
}

func TestValidateBook(t *testing.T) {
	assert.True(t, ValidateBook(validBook()).Ok())

	b := validBook()
	b.CopiesAvailable = 6 // more copies available than owned
	fe := ValidateBook(b)
	assert.False(t, fe.Ok())
	assert.Contains(t, fe["copiesAvailable"], "cannot exceed quantity")

	b = validBook()
	b.Title = "  "
	assert.Equal(t, "title is required", ValidateBook(b)["title"])

	b = validBook()
	b.Price = -1
	assert.Equal(t, "price cannot be negative", ValidateBook(b)["price"])

	b = validBook()
	b.Price = 9.999
	assert.Contains(t, ValidateBook(b)["price"], "two decimals")

	b = validBook()
	b.Quantity = -1
	assert.False(t, ValidateBook(b).Ok())
}

// Two-decimal prices rarely have an exact float64 representation, so the
// decimal check must tolerate representation error rather than compare
// price*100 exactly.
func TestValidateBookAcceptsOrdinaryPrices(t *testing.T) {
	for _, price := range []float64{0.07, 0.29, 8.20, 12.99, 19.99, 29.99, 100, 0} {
		b := validBook()
		b.Price = price
		assert.True(t, ValidateBook(b).Ok(), "price %v rejected: %s", price, ValidateBook(b).Error())
	}

	for _, price := range []float64{9.999, 0.001, 12.345} {
		b := validBook()
		b.Price = price
		assert.Contains(t, ValidateBook(b)["price"], "two decimals", "price %v", price)
	}
}

func validReader() Reader {
	return Reader{
		Name:    "Alice",
		Email:   "alice@example.com",
		Phone:   "0712345678",
		NIC:     "991234567V",
		Address: "12 Library Lane",
	}
}

func TestValidateReader(t *testing.T) {
	assert.True(t, ValidateReader(validReader()).Ok())

	fe := ValidateReader(Reader{})
	for _, field := range []string{"name", "email", "phone", "nic", "address"} {
		assert.Contains(t, fe[field], "required", "field %s", field)
	}

	r := validReader()
	r.Email = "not-an-email"
	assert.Equal(t, "invalid email format", ValidateReader(r)["email"])

	r = validReader()
	r.Status = "SLEEPING"
	assert.False(t, ValidateReader(r).Ok())

	r = validReader()
	r.Status = ReaderInactive
	r.MembershipType = MembershipPremium
	assert.True(t, ValidateReader(r).Ok())
}

func validLending() Lending {
	return Lending{
		ReaderID:   "r1",
		ReaderName: "Alice",
		Books:      []LendingBook{{ID: "b1", BookTitle: "1984"}},
		BorrowDate: "2026-08-01T10:00:00Z",
		DueDate:    "2026-08-15T10:00:00Z",
		Status:     LendingBorrowed,
	}
}

func TestValidateLending(t *testing.T) {
	assert.True(t, ValidateLending(validLending()).Ok())

	l := validLending()
	l.Books = nil
	assert.Contains(t, ValidateLending(l)["books"], "at least one book")

	l = validLending()
	l.DueDate = l.BorrowDate // due must be strictly after borrow
	assert.Contains(t, ValidateLending(l)["dueDate"], "after borrow date")

	l = validLending()
	l.Status = LendingReturned
	assert.Contains(t, ValidateLending(l)["returnDate"], "return date")
	l.ReturnDate = "2026-08-10T10:00:00Z"
	assert.True(t, ValidateLending(l).Ok())
}

func TestValidateUser(t *testing.T) {
	u := User{Name: "Bob", Email: "bob@example.com", Role: RoleStaff, Password: "hunter2"}
	assert.True(t, ValidateUser(u, false).Ok())

	u.Password = ""
	assert.Equal(t, "password is required", ValidateUser(u, false)["password"])
	// On update an empty password means keep current.
	assert.True(t, ValidateUser(u, true).Ok())

	u.Role = "superuser"
	assert.Contains(t, ValidateUser(u, true)["role"], "admin or staff")
}

func TestFieldErrorsMessage(t *testing.T) {
	fe := FieldErrors{"b": "second", "a": "first"}
	assert.Equal(t, "a: first; b: second", fe.Error())
}
