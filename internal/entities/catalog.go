package entities

import "strings"

type Author struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
}

type Book struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"size:200;not null" json:"name"`
	Authors    []Author `gorm:"many2many:book_authors;constraint:OnDelete:CASCADE" json:"-"`
	SeriesName *string  `gorm:"column:series_name;size:200" json:"seriesName"` // nil for standalone books
	Cover      string   `gorm:"size:100" json:"cover"`                          // media-relative, e.g. "covers/hobbit_1a2b3c4d.jpg"
	DescDE     *string  `gorm:"column:desc_de;type:text" json:"desc_de"`
	DescEN     *string  `gorm:"column:desc_en;type:text" json:"desc_en"`
}

// AuthorNames joins the names of the book's authors with ", " in the order
// they were loaded.
func (b Book) AuthorNames() string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

// BookRecord is the wire shape of a book: the author relation is flattened
// into a single comma-joined string.
type BookRecord struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Author     string  `json:"author"`
	SeriesName *string `json:"seriesName"`
	Cover      string  `json:"cover"`
	DescDE     *string `json:"desc_de"`
	DescEN     *string `json:"desc_en"`
}

func (b Book) Record() BookRecord {
	return BookRecord{
		ID:         b.ID,
		Name:       b.Name,
		Author:     b.AuthorNames(),
		SeriesName: b.SeriesName,
		Cover:      b.Cover,
		DescDE:     b.DescDE,
		DescEN:     b.DescEN,
	}
}

// NewBookRecords converts books into their wire shape, keeping order.
func NewBookRecords(books []Book) []BookRecord {
	records := make([]BookRecord, 0, len(books))
	for _, b := range books {
		records = append(records, b.Record())
	}
	return records
}
