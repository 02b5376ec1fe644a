package core

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type (
	ExpenseCategory  string
	ShoppingCategory string
	HabitCategory    string
	HabitFrequency   string
	FamilyMember     string
)

const (
	CategoryHousing   ExpenseCategory = "housing"
	CategoryFood      ExpenseCategory = "food"
	CategoryShopping  ExpenseCategory = "shopping"
	CategoryHealth    ExpenseCategory = "health"
	CategoryTransport ExpenseCategory = "transport"
	CategoryFinancial ExpenseCategory = "financial"
	CategoryFamily    ExpenseCategory = "family"
	CategoryCharity   ExpenseCategory = "charity"
	CategoryAnnual    ExpenseCategory = "annual"
	CategoryOther     ExpenseCategory = "other"
)

const (
	ShoppingGroceries   ShoppingCategory = "groceries"
	ShoppingClothing    ShoppingCategory = "clothing"
	ShoppingHousehold   ShoppingCategory = "household"
	ShoppingElectronics ShoppingCategory = "electronics"
	ShoppingHealth      ShoppingCategory = "health"
	ShoppingGeneral     ShoppingCategory = "general"
)

const (
	HabitFinancial HabitCategory = "financial"
	HabitEarning   HabitCategory = "earning"
	HabitSaving    HabitCategory = "saving"
	HabitHealth    HabitCategory = "health"
)

const (
	Daily   HabitFrequency = "daily"
	Weekly  HabitFrequency = "weekly"
	Monthly HabitFrequency = "monthly"
)

const (
	MemberSelf     FamilyMember = "self"
	MemberSpouse   FamilyMember = "spouse"
	MemberChildren FamilyMember = "children"
	MemberParents  FamilyMember = "parents"
)

var expenseCategories = []ExpenseCategory{
	CategoryHousing, CategoryFood, CategoryShopping, CategoryHealth, CategoryTransport,
	CategoryFinancial, CategoryFamily, CategoryCharity, CategoryAnnual, CategoryOther,
}

var shoppingCategories = []ShoppingCategory{
	ShoppingGroceries, ShoppingClothing, ShoppingHousehold,
	ShoppingElectronics, ShoppingHealth, ShoppingGeneral,
}

var shoppingNames = map[ShoppingCategory]string{
	ShoppingGroceries:   "Groceries",
	ShoppingClothing:    "Clothing",
	ShoppingHousehold:   "Household",
	ShoppingElectronics: "Electronics",
	ShoppingHealth:      "Health & Beauty",
	ShoppingGeneral:     "General",
}

var habitCategoryNames = map[HabitCategory]string{
	HabitFinancial: "Financial",
	HabitEarning:   "Earning",
	HabitSaving:    "Saving",
	HabitHealth:    "Health",
}

var frequencyNames = map[HabitFrequency]string{
	Daily:   "Daily",
	Weekly:  "Weekly",
	Monthly: "Monthly",
}

var memberNames = map[FamilyMember]string{
	MemberSelf:     "Self",
	MemberSpouse:   "Spouse",
	MemberChildren: "Children",
	MemberParents:  "Parents",
}

// lookup matches s against keys and display names, case-insensitively.
func lookup[T ~string](s string, names map[T]string, fallback T) T {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range names {
		if s == string(k) || s == strings.ToLower(name) {
			return k
		}
	}
	return fallback
}

// LookupExpenseCategory resolves a key or display name, CategoryOther when unknown.
func LookupExpenseCategory(s string) ExpenseCategory {
	names := make(map[ExpenseCategory]string, len(expenseCategories))
	for _, c := range expenseCategories {
		names[c] = DefaultCatalog().Name(c)
	}
	return lookup(s, names, CategoryOther)
}

// LookupShoppingCategory resolves a key or display name, ShoppingGeneral when unknown.
func LookupShoppingCategory(s string) ShoppingCategory {
	return lookup(s, shoppingNames, ShoppingGeneral)
}

// LookupHabitCategory resolves a key or display name, HabitFinancial when unknown.
func LookupHabitCategory(s string) HabitCategory {
	return lookup(s, habitCategoryNames, HabitFinancial)
}

// LookupHabitFrequency resolves a key or display name, Daily when unknown.
func LookupHabitFrequency(s string) HabitFrequency {
	return lookup(s, frequencyNames, Daily)
}

// LookupFamilyMember resolves a key or display name, MemberSelf when unknown.
func LookupFamilyMember(s string) FamilyMember {
	return lookup(s, memberNames, MemberSelf)
}

// ShoppingCategories returns every shopping category in display order.
func ShoppingCategories() []ShoppingCategory {
	return append([]ShoppingCategory(nil), shoppingCategories...)
}

func (c ShoppingCategory) Name() string { return shoppingNames[c] }
func (c HabitCategory) Name() string    { return habitCategoryNames[c] }
func (f HabitFrequency) Name() string   { return frequencyNames[f] }
func (m FamilyMember) Name() string     { return memberNames[m] }

// IsKnown reports whether c is one of the declared shopping categories.
func (c ShoppingCategory) IsKnown() bool {
	_, ok := shoppingNames[c]
	return ok
}

// CategoryInfo describes an expense category from the catalog.
type CategoryInfo struct {
	Key           ExpenseCategory `yaml:"key" json:"key"`
	Name          string          `yaml:"name" json:"name"`
	Annual        bool            `yaml:"annual" json:"is_annual"`
	Subcategories []string        `yaml:"subcategories" json:"subcategories"`
}

// Catalog is the expense category table in display order.
type Catalog struct {
	entries []CategoryInfo
	byKey   map[ExpenseCategory]CategoryInfo
}

//go:embed catalog.yaml
var catalogYAML []byte

var (
	defaultCatalog     Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded expense category catalog.
func DefaultCatalog() Catalog {
	defaultCatalogOnce.Do(func() {
		c, err := LoadCatalog(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("core: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// LoadCatalog parses a YAML category list. Every entry must name a declared
// ExpenseCategory; categories missing from the document are appended with
// their key as display name so lookups always resolve.
func LoadCatalog(data []byte) (Catalog, error) {
	var doc struct {
		Categories []CategoryInfo `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	known := make(map[ExpenseCategory]bool, len(expenseCategories))
	for _, c := range expenseCategories {
		known[c] = true
	}

	cat := Catalog{byKey: make(map[ExpenseCategory]CategoryInfo)}
	for _, e := range doc.Categories {
		e.Key = ExpenseCategory(strings.ToLower(strings.TrimSpace(string(e.Key))))
		if !known[e.Key] {
			return Catalog{}, fmt.Errorf("unknown category key %q", e.Key)
		}
		if _, dup := cat.byKey[e.Key]; dup {
			return Catalog{}, fmt.Errorf("duplicate category key %q", e.Key)
		}
		if strings.TrimSpace(e.Name) == "" {
			e.Name = string(e.Key)
		}
		cat.byKey[e.Key] = e
		cat.entries = append(cat.entries, e)
	}
	for _, c := range expenseCategories {
		if _, ok := cat.byKey[c]; !ok {
			e := CategoryInfo{Key: c, Name: string(c)}
			cat.byKey[c] = e
			cat.entries = append(cat.entries, e)
		}
	}
	return cat, nil
}

// All returns the catalog entries in display order.
func (c Catalog) All() []CategoryInfo {
	return append([]CategoryInfo(nil), c.entries...)
}

// Info returns the entry for key, falling back to CategoryOther.
func (c Catalog) Info(key ExpenseCategory) CategoryInfo {
	if e, ok := c.byKey[key]; ok {
		return e
	}
	return c.byKey[CategoryOther]
}

// Name returns the display name for key.
func (c Catalog) Name(key ExpenseCategory) string {
	return c.Info(key).Name
}

// AnnualCategories lists the keys flagged as annual, sorted.
func (c Catalog) AnnualCategories() []ExpenseCategory {
	var out []ExpenseCategory
	for _, e := range c.entries {
		if e.Annual {
			out = append(out, e.Key)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
