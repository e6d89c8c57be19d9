package catalog

import (
	"regexp"
	"strings"

	"github.com/deemkeen/disclosures/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// BlockInput carries the editable fields of an information block.
type BlockInput struct {
	Title       string
	ContentHTML string
	CategoryId  string
	IsActive    bool
}

// CategoryInput carries the editable fields of a category.
type CategoryInput struct {
	Name  string
	Color string
}

func (in BlockInput) normalized() BlockInput {
	in.Title = strings.TrimSpace(in.Title)
	in.CategoryId = strings.TrimSpace(in.CategoryId)
	return in
}

func (in CategoryInput) normalized() CategoryInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	if in.Color == "" {
		in.Color = DefaultCategoryColor
	}
	return in
}

func (in BlockInput) validate(categories []domain.Category) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required.Error("başlık zorunludur")),
		validation.Field(&in.CategoryId,
			validation.Required.Error("kategori zorunludur"),
			validation.By(categoryExists(categories)),
		),
	)
}

func (in CategoryInput) validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("kategori adı zorunludur")),
		validation.Field(&in.Color, validation.Match(hexColor).Error("renk #RRGGBB biçiminde olmalıdır")),
	)
}

func categoryExists(categories []domain.Category) validation.RuleFunc {
	return func(value interface{}) error {
		id, _ := value.(string)
		if id == "" {
			return nil
		}
		for _, c := range categories {
			if c.Id == id {
				return nil
			}
		}
		return validation.NewError("catalog.category_unknown", "kategori bulunamadı")
	}
}
