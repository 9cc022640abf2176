package library

// Book is the client-side projection of a catalog entry. The server owns the
// authoritative record; the client never mutates a Book in place.
type Book struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Description string `json:"description"`
	ImagePath   string `json:"imagePath"`
	IsBorrowed  bool   `json:"isBorrowed"`
}

// Credentials is the payload for login and registration requests.
type Credentials struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// LoginResponse mirrors the payload returned by /api/auth/login.
type LoginResponse struct {
	Role string `json:"role"`
}

// BorrowCheck mirrors /api/books/{id}/is-borrowed-by-user.
type BorrowCheck struct {
	HasBorrowed bool `json:"hasBorrowed"`
}

// BookDraft carries the editable fields of a book for create and update
// submissions. A zero ID selects create. ImageFile, when set, is a local path
// to a cover image to upload; OldImagePath tells the server which previous
// asset to discard when a replacement image is supplied.
type BookDraft struct {
	ID           int64
	Title        string
	Author       string
	Description  string
	ImageFile    string
	OldImagePath string
}
