package mysql

import "github.com/jsamuelsen/quote-lab/internal/domain"

type authorModel struct {
	ID      int64  `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"size:100;not null"`
	Surname string `gorm:"size:100;not null"`
}

func (authorModel) TableName() string { return "authors" }

func (m *authorModel) toDomain() *domain.Author {
	return &domain.Author{ID: m.ID, Name: m.Name, Surname: m.Surname}
}

type quoteModel struct {
	ID       int64        `gorm:"primaryKey;autoIncrement"`
	Message  string       `gorm:"type:text;not null"`
	AuthorID *int64       `gorm:"index"`
	Author   *authorModel `gorm:"constraint:OnDelete:SET NULL"`
}

func (quoteModel) TableName() string { return "quotes" }

func (m *quoteModel) toDomain() *domain.Quote {
	q := &domain.Quote{ID: m.ID, Message: m.Message, AuthorID: m.AuthorID}
	if m.Author != nil {
		q.Author = m.Author.toDomain()
	}

	return q
}
