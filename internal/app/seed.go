package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/landaireal/landai-rent/internal/domain"
)

const unsplashParams = "?auto=format&fit=crop&q=80&w=1600"

// SampleProperties is the demo catalogue loaded into an empty store.
func SampleProperties() []domain.PropertyInput {
	return []domain.PropertyInput{
		{
			TitleEn:       "Luxury Villa in Palm Jumeirah",
			TitleAr:       "فيلا فاخرة في نخلة جميرا",
			DescriptionEn: "Experience the epitome of luxury living in this stunning 5-bedroom villa with private beach access.",
			DescriptionAr: "جرب قمة المعيشة الفاخرة في هذه الفيلا المذهلة المكونة من 5 غرف نوم مع مدخل خاص إلى الشاطئ.",
			Type:          domain.TypeSale,
			Category:      domain.CategoryVilla,
			Location:      "Dubai",
			Price:         15000000,
			Area:          7000,
			ImageURL:      "https://images.unsplash.com/photo-1613490493576-7fde63acd811" + unsplashParams,
			Features:      []string{"Sea View", "Private Pool", "Garden", "Maid's Room", "Smart Home"},
			IsFeatured:    true,
		},
		{
			TitleEn:       "Modern Apartment in Downtown",
			TitleAr:       "شقة حديثة في وسط المدينة",
			DescriptionEn: "Stylish 2-bedroom apartment with Burj Khalifa view, walking distance to Dubai Mall.",
			DescriptionAr: "شقة أنيقة مكونة من غرفتي نوم مع إطلالة على برج خليفة، على مسافة قريبة من دبي مول.",
			Type:          domain.TypeRent,
			Category:      domain.CategoryApartment,
			Location:      "Dubai",
			Price:         180000,
			Area:          1200,
			ImageURL:      "https://images.unsplash.com/photo-1560448204-e02f11c3d0e2" + unsplashParams,
			Features:      []string{"Burj Khalifa View", "Gym", "Pool", "Parking", "Security"},
			IsFeatured:    true,
		},
		{
			TitleEn:       "Commercial Office in Abu Dhabi",
			TitleAr:       "مكتب تجاري في أبو ظبي",
			DescriptionEn: "Premium office space in the heart of Abu Dhabi business district.",
			DescriptionAr: "مساحة مكتبية متميزة في قلب الحي التجاري في أبو ظبي.",
			Type:          domain.TypeRent,
			Category:      domain.CategoryCommercial,
			Location:      "Abu Dhabi",
			Price:         95000,
			Area:          1500,
			ImageURL:      "https://images.unsplash.com/photo-1497366216548-37526070297c" + unsplashParams,
			Features:      []string{"Fitted", "City View", "High Floor", "Near Metro"},
		},
		{
			TitleEn:       "Spacious Land in Al Khawaneej",
			TitleAr:       "أرض واسعة في الخوانيج",
			DescriptionEn: "Large residential plot perfect for building your dream family mansion.",
			DescriptionAr: "قطعة أرض سكنية كبيرة مثالية لبناء قصر أحلام عائلتك.",
			Type:          domain.TypeSale,
			Category:      domain.CategoryLand,
			Location:      "Dubai",
			Price:         3500000,
			Area:          15000,
			ImageURL:      "https://images.unsplash.com/photo-1500382017468-9049fed747ef" + unsplashParams,
			Features:      []string{"Residential", "Corner Plot", "Freehold"},
		},
	}
}

// Seed loads SampleProperties when the store holds no properties and
// returns how many it created. The cached collection is retired once at the
// end.
func (s *CommandService) Seed(ctx context.Context) (int, error) {
	existing, err := s.store.GetProperties(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	n := 0
	defer func() {
		if n > 0 {
			s.invalidateList(ctx)
		}
	}()
	for _, in := range SampleProperties() {
		if _, err := s.store.CreateProperty(ctx, in); err != nil {
			return n, err
		}
		n++
	}
	log.Info().Int("count", n).Msg("seeded sample properties")
	return n, nil
}
