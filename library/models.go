package library

// ReaderStatus matches the backend's reader status enum.
type ReaderStatus string

const (
	ReaderActive   ReaderStatus = "ACTIVE"
	ReaderInactive ReaderStatus = "INACTIVE"
)

// MembershipType matches the backend's membership enum.
type MembershipType string

const (
	MembershipStandard MembershipType = "STANDARD"
	MembershipPremium  MembershipType = "PREMIUM"
)

// LendingStatus is the lifecycle state of a lending record.
type LendingStatus string

const (
	LendingBorrowed LendingStatus = "borrowed"
	LendingReturned LendingStatus = "returned"
)

// Role is an admin user's role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Book mirrors a book record as the backend serializes it. The backend
// assigns both the document ID and the human-readable bookId.
type Book struct {
	ID              string  `json:"_id,omitempty"`
	BookID          string  `json:"bookId"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Category        string  `json:"category,omitempty"`
	ISBN            string  `json:"isbn,omitempty"`
	Publisher       string  `json:"publisher,omitempty"`
	PublishYear     int     `json:"publishYear,omitempty"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	Quantity        int     `json:"quantity"`
	CopiesAvailable int     `json:"copiesAvailable"`
	Available       bool    `json:"available,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
}

// Key returns the record identity used for cache merging.
func (b Book) Key() string { return b.ID }

// DisplayCategory is the category shown and filtered on; books without one
// fall into "Uncategorized".
func (b Book) DisplayCategory() string {
	if b.Category == "" {
		return "Uncategorized"
	}
	return b.Category
}

// Reader is a library patron, distinct from an authenticated admin User.
type Reader struct {
	ID             string         `json:"_id,omitempty"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	NIC            string         `json:"nic"`
	Address        string         `json:"address"`
	Status         ReaderStatus   `json:"status,omitempty"`
	MembershipType MembershipType `json:"membershipType,omitempty"`
	Remarks        string         `json:"remarks,omitempty"`
}

func (r Reader) Key() string { return r.ID }

// LendingBook is the denormalized book snapshot carried on a lending.
type LendingBook struct {
	ID        string `json:"_id,omitempty"`
	BookTitle string `json:"bookTitle"`
}

// Lending records one or more books borrowed by one reader. Reader name and
// book titles are snapshots taken at lend time.
type Lending struct {
	ID         string        `json:"_id,omitempty"`
	ReaderID   string        `json:"readerId"`
	ReaderName string        `json:"readerName"`
	Books      []LendingBook `json:"books"`
	BorrowDate string        `json:"borrowDate"`
	DueDate    string        `json:"dueDate"`
	ReturnDate string        `json:"returnDate,omitempty"`
	Status     LendingStatus `json:"status"`
}

func (l Lending) Key() string { return l.ID }

// User is an authenticated admin/staff account. Password is write-only:
// required on create, empty on update means keep current.
type User struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IsActive bool   `json:"isActive"`
	Password string `json:"password,omitempty"`
}

func (u User) Key() string { return u.ID }

// OverdueReader is a read-only projection of a reader with at least one
// overdue lending.
type OverdueReader struct {
	ReaderID   string `json:"readerId"`
	ReaderName string `json:"readerName"`
}

// OverdueBook is a read-only projection of one overdue title.
type OverdueBook struct {
	BookTitle string `json:"bookTitle"`
	DueDate   string `json:"dueDate"`
}
