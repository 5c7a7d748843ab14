package domain

import "testing"

func TestPropertyFilterMatch(t *testing.T) {
	p := Property{PropertyInput: PropertyInput{
		TitleEn: "Luxury Villa in Palm Jumeirah", TitleAr: "فيلا فاخرة في نخلة جميرا",
		Type: TypeSale, Category: CategoryVilla, Location: "Dubai", IsFeatured: true,
	}}
	yes, no := true, false
	cases := []struct {
		name string
		f    PropertyFilter
		want bool
	}{
		{"zero", PropertyFilter{}, true},
		{"english title any case", PropertyFilter{Q: "VILLA"}, true},
		{"arabic title", PropertyFilter{Q: "نخلة"}, true},
		{"location", PropertyFilter{Q: "dub"}, true},
		{"no match", PropertyFilter{Q: "office"}, false},
		{"type", PropertyFilter{Type: "Sale"}, true},
		{"wrong type", PropertyFilter{Type: TypeRent}, false},
		{"category", PropertyFilter{Category: CategoryVilla}, true},
		{"wrong location", PropertyFilter{Location: "Abu Dhabi"}, false},
		{"featured", PropertyFilter{Featured: &yes}, true},
		{"not featured", PropertyFilter{Featured: &no}, false},
		{"combined", PropertyFilter{Q: "palm", Type: TypeSale, Location: "dubai"}, true},
	}
	for _, tc := range cases {
		if got := tc.f.Match(p); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFilterPropertiesKeepsOrder(t *testing.T) {
	in := []Property{
		{ID: 1, PropertyInput: PropertyInput{Type: TypeRent}},
		{ID: 2, PropertyInput: PropertyInput{Type: TypeSale}},
		{ID: 3, PropertyInput: PropertyInput{Type: TypeRent}},
	}
	out := FilterProperties(in, PropertyFilter{Type: TypeRent})
	if len(out) != 2 || out[0].ID != 1 || out[1].ID != 3 {
		t.Fatalf("unexpected: %+v", out)
	}
	if got := FilterProperties(in, PropertyFilter{}); len(got) != 3 {
		t.Fatalf("zero filter dropped rows: %+v", got)
	}
}

func TestCloneCopiesFeatures(t *testing.T) {
	p := Property{PropertyInput: PropertyInput{Features: []string{"a"}}}
	c := p.Clone()
	c.Features[0] = "b"
	if p.Features[0] != "a" {
		t.Fatal("clone aliases features")
	}
}
