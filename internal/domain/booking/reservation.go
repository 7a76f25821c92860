package booking

import "image"

// Reservation is the row appended to the reservation store.
type Reservation struct {
	Date    string
	Time    string
	Name    string
	Phone   string
	Service ServiceKind
}

// Notification is the payload forwarded to the operator relay.
type Notification struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
	Price   string `json:"price"`
	Image   string `json:"image,omitempty"`
}

// Proof is a decoded payment screenshot ready for transport.
type Proof struct {
	Format  string
	Width   int
	Height  int
	Encoded string
	Image   image.Image
}

func NewNotification(r Reservation, proof *Proof) Notification {
	info := r.Service.Info()
	n := Notification{
		Name:    r.Name,
		Phone:   r.Phone,
		Date:    r.Date,
		Time:    r.Time,
		Service: info.Label,
		Price:   info.Price,
	}
	if proof != nil {
		n.Image = proof.Encoded
	}
	return n
}
