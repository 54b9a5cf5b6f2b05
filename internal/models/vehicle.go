package models

// Vehicle represents a customer's vehicle on file. Vehicles are created
// implicitly the first time a plate is booked and deleted explicitly.
type Vehicle struct {
	BaseModel
	OwnerID      string `gorm:"size:36;index" json:"ownerId"`
	Plate        string `gorm:"size:20;index" json:"plate"`
	CustomerName string `gorm:"size:150" json:"customerName"`

	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
