package dbmodels

type VerificationCode struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	Company   string `gorm:"type:varchar(255)"`
	Username  string `gorm:"type:varchar(255)"`
	Email     string `gorm:"type:varchar(255);index"`
	Code      string `gorm:"type:varchar(12)"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;index"` // unix millis
}
