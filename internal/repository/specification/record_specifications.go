package specification

import "gorm.io/gorm"

// ByUserId filters records belonging to one end user.
type ByUserId struct {
	UserId string
}

func (s ByUserId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// OrderBySeq orders by insertion order. The store guarantees no sort key
// distinct from insertion order, so Seq is the chronological order too.
type OrderBySeq struct {
	Desc bool
}

func (s OrderBySeq) Apply(db *gorm.DB) *gorm.DB {
	if s.Desc {
		return db.Order("seq DESC")
	}
	return db.Order("seq ASC")
}

// Limit caps the result set.
type Limit struct {
	N int
}

func (s Limit) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.N)
}
