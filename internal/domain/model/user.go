package model

// 使用者主檔由上游authcenter同步，storefront只讀
type User struct {
	BaseModel
	UserID    uint   `gorm:"primaryKey" json:"user_id"`
	UserName  string `gorm:"not null;type:varchar(50)" json:"user_name"`
	UserEmail string `gorm:"unique;not null;type:varchar(50)" json:"user_email"`
	UserPhone string `gorm:"unique;not null;type:varchar(50)" json:"user_phone"`
}
