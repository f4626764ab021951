package catalog

import (
	"errors"
	"slices"
	"testing"
)

func TestDefault_Size(t *testing.T) {
	if got := Default().Len(); got != 175 {
		t.Errorf("got %d questions, want 175", got)
	}
}

func TestCategories_FirstSeenOrder(t *testing.T) {
	want := []Category{
		CategorySocializacao,
		CategoryCognicao,
		CategoryLinguagem,
		CategoryAutoajuda,
		CategoryMotricidade,
	}
	if got := Categories(); !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestQuestionsFor_EveryGroupHasFive(t *testing.T) {
	for _, cat := range Categories() {
		for _, band := range AllAgeBands() {
			if got := len(QuestionsFor(cat, band)); got != 5 {
				t.Errorf("QuestionsFor(%q, %q): got %d questions, want 5", cat, band, got)
			}
		}
	}
}

func TestQuestionsFor_CatalogOrder(t *testing.T) {
	qs := QuestionsFor(CategoryMotricidade, "2")
	want := []string{"mot-2-1", "mot-2-2", "mot-2-3", "mot-2-4", "mot-2-5"}
	got := make([]string, len(qs))
	for i, q := range qs {
		got[i] = q.ID
		if q.Category != CategoryMotricidade || q.AgeBand != "2" {
			t.Errorf("question %q has category %q band %q", q.ID, q.Category, q.AgeBand)
		}
	}
	if !slices.Equal(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if ids := QuestionIDs(CategoryMotricidade, "2"); !slices.Equal(ids, want) {
		t.Errorf("QuestionIDs = %v, want %v", ids, want)
	}
}

func TestQuestionsFor_NoMatch(t *testing.T) {
	if got := QuestionsFor("Música", "2"); len(got) != 0 {
		t.Errorf("unknown category: got %d questions, want 0", len(got))
	}
	if got := QuestionsFor(CategoryCognicao, "7"); len(got) != 0 {
		t.Errorf("unknown band: got %d questions, want 0", len(got))
	}
}

func TestAgeBandsFor(t *testing.T) {
	if got := AgeBandsFor(CategoryLinguagem); !slices.Equal(got, AllAgeBands()) {
		t.Errorf("AgeBandsFor = %v, want %v", got, AllAgeBands())
	}
	if got := AgeBandsFor("Música"); got != nil {
		t.Errorf("AgeBandsFor(unknown) = %v, want nil", got)
	}
}

func TestGet(t *testing.T) {
	q, ok := Get("soc-0-1-3")
	if !ok {
		t.Fatal("soc-0-1-3 not found")
	}
	if q.Category != CategorySocializacao || q.AgeBand != AgeBandInfant {
		t.Errorf("got %q/%q, want %q/%q", q.Category, q.AgeBand, CategorySocializacao, AgeBandInfant)
	}
	if _, ok := Get("nope"); ok {
		t.Error("Get(nope) reported found")
	}
}

func TestSequence(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"soc-0-1-3", "3"},
		{"mot-2-5", "5"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := Sequence(Question{ID: tt.id}); got != tt.want {
			t.Errorf("Sequence(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	all[0].Text = "changed"
	if q, _ := Get(all[0].ID); q.Text == "changed" {
		t.Error("mutating All() result changed the catalog")
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		qs   []Question
	}{
		{"empty", nil},
		{"empty id", []Question{{ID: "", Category: "A", AgeBand: "1", Text: "t"}}},
		{"empty category", []Question{{ID: "a-1", AgeBand: "1", Text: "t"}}},
		{"empty band", []Question{{ID: "a-1", Category: "A", Text: "t"}}},
		{"empty text", []Question{{ID: "a-1", Category: "A", AgeBand: "1"}}},
		{"duplicate id", []Question{
			{ID: "a-1", Category: "A", AgeBand: "1", Text: "t"},
			{ID: "a-1", Category: "A", AgeBand: "1", Text: "u"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.qs)
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Errorf("New() error = %v, want ErrInvalidCatalog", err)
			}
		})
	}
}

func TestParse_ExpandsIDs(t *testing.T) {
	doc := []byte(`
- category: Música
  prefix: mus
  ageRange: "3"
  questions:
    - Canta
    - Dança
`)
	c, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := c.QuestionIDs("Música", "3")
	if want := []string{"mus-3-1", "mus-3-2"}; !slices.Equal(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("not: [valid")); err == nil {
		t.Error("expected decode error")
	}
	doc := []byte(`
- category: Música
  prefix: mus
  ageRange: "3"
  questions: ["", "Dança"]
`)
	if _, err := Parse(doc); !errors.Is(err, ErrInvalidCatalog) {
		t.Errorf("err = %v, want ErrInvalidCatalog", err)
	}
}

func TestAgeBandFor(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{0, AgeBandInfant},
		{1, "1"},
		{4, "4"},
		{6, "6"},
		{11, "6"},
		{-1, AgeBandInfant},
	}
	for _, tt := range tests {
		if got := AgeBandFor(tt.age); got != tt.want {
			t.Errorf("AgeBandFor(%d) = %q, want %q", tt.age, got, tt.want)
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"Socialização", CategorySocializacao},
		{"socializacao", CategorySocializacao},
		{"COGNIÇÃO", CategoryCognicao},
		{"lin", CategoryLinguagem},
		{" autoajuda ", CategoryAutoajuda},
		{"Mot", CategoryMotricidade},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if err != nil {
			t.Errorf("ParseCategory(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "mo", "Música"} {
		if _, err := ParseCategory(bad); !errors.Is(err, ErrUnknownCategory) {
			t.Errorf("ParseCategory(%q) err = %v, want ErrUnknownCategory", bad, err)
		}
	}
}

func TestAllCategories_MatchesCatalog(t *testing.T) {
	if got := Categories(); !slices.Equal(got, AllCategories()) {
		t.Errorf("catalog categories = %v, want %v", got, AllCategories())
	}
}
