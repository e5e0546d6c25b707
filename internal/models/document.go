package models

// Document is the whole persisted state.
type Document struct {
	Users []User `json:"users"`
	Posts []Post `json:"posts"`
}

// NewDocument returns an empty document that encodes as {"users":[],"posts":[]}.
func NewDocument() *Document {
	return &Document{Users: []User{}, Posts: []Post{}}
}

func (d *Document) FindUserByEmail(email string) *User {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return &d.Users[i]
		}
	}
	return nil
}

func (d *Document) FindUserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// PostIndex returns the position of the post with id, or -1.
func (d *Document) PostIndex(id string) int {
	for i := range d.Posts {
		if d.Posts[i].ID == id {
			return i
		}
	}
	return -1
}
