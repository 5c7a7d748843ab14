package schema

import "github.com/landaireal/landai-rent/internal/domain"

// Integer columns are 32-bit in every SQL backend.
const (
	maxInt32 = "2147483647"
	minInt32 = "-2147483648"
)

var Property = Schema{
	Name: "property",
	Fields: []Field{
		{Name: "id", Kind: Integer},
		{Name: "titleEn", Kind: String, Rules: "min=1"},
		{Name: "titleAr", Kind: String, Rules: "min=1"},
		{Name: "descriptionEn", Kind: String, Rules: "min=1"},
		{Name: "descriptionAr", Kind: String, Rules: "min=1"},
		{Name: "type", Kind: String, Rules: "oneof=" + domain.TypeSale + " " + domain.TypeRent},
		{Name: "category", Kind: String, Rules: "oneof=" + domain.CategoryApartment + " " + domain.CategoryVilla + " " + domain.CategoryLand + " " + domain.CategoryCommercial},
		{Name: "location", Kind: String, Rules: "min=1"},
		{Name: "price", Kind: Integer, Rules: "gt=0,max=" + maxInt32},
		{Name: "area", Kind: Integer, Rules: "gt=0,max=" + maxInt32},
		{Name: "imageUrl", Kind: String, Rules: "url"},
		{Name: "features", Kind: StringList, Optional: true},
		{Name: "isFeatured", Kind: Boolean, Optional: true},
		{Name: "createdAt", Kind: Timestamp},
	},
}

var Inquiry = Schema{
	Name: "inquiry",
	Fields: []Field{
		{Name: "id", Kind: Integer},
		{Name: "name", Kind: String, Rules: "min=1"},
		{Name: "email", Kind: String, Rules: "min=1"},
		{Name: "phone", Kind: String, Rules: "min=1"},
		{Name: "message", Kind: String, Rules: "min=1"},
		{Name: "propertyId", Kind: Integer, Optional: true, Rules: "min=" + minInt32 + ",max=" + maxInt32},
		{Name: "createdAt", Kind: Timestamp},
	},
}

var (
	InsertProperty = Property.Omit(SystemFields...)
	InsertInquiry  = Inquiry.Omit(SystemFields...)
)

func DecodePropertyInput(body []byte) (domain.PropertyInput, error) {
	var in domain.PropertyInput
	err := InsertProperty.Decode(body, &in)
	return in, err
}

func DecodeInquiryInput(body []byte) (domain.InquiryInput, error) {
	var in domain.InquiryInput
	err := InsertInquiry.Decode(body, &in)
	return in, err
}
