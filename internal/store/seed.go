package store

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// Seed loads a development data set: one operator (login "operator",
// password "operator"), a handful of tires across seasons, and two clients.
func (s *Store) Seed() {
	hash, err := bcrypt.GenerateFromPassword([]byte("operator"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: hash password: %v", err)
	}
	s.AddUser(User{
		ID:             uuid.New(),
		Login:          "operator",
		FullName:       "Demo Operator",
		Role:           "operator",
		HashedPassword: string(hash),
	})

	products := []Product{
		{
			Name:            "Cordiant Snow Cross 205/55 R16 ЗИМ ШИП",
			Code:            "CRD-SC-205",
			Price:           dec("32000"),
			WholesalePrice:  decPtr("28000"),
			Season:          "winter",
			BranchCity:      "Алматы",
			AssortmentGroup: "tires",
			TireType:        "studded",
		},
		{
			Name:             "Nokian Hakka Green 185/65 R15",
			Code:             "NOK-HG-185",
			Price:            dec("27500"),
			RetailPrice:      decPtr("29000"),
			PromotionalPrice: decPtr("25000"),
			SeasonTags:       []string{"ЛЕТО"},
			BranchCity:       "Алматы",
			AssortmentGroup:  "tires",
			TireType:         "summer",
		},
		{
			Name:            "Triangle TR777 215/60 R17 (ВС)",
			Code:            "TRI-777-215",
			Price:           dec("30500"),
			Season:          "all-season",
			BranchCity:      "Астана",
			AssortmentGroup: "tires",
			TireType:        "all-season",
		},
		{
			Name:            "Каток дорожный Без рисунка 9.00-20",
			Code:            "KAT-900",
			Price:           dec("41000"),
			BranchCity:      "Астана",
			AssortmentGroup: "special",
			TireType:        "industrial",
		},
	}
	for _, p := range products {
		p.ID = uuid.New()
		s.AddProduct(p)
	}

	clients := []Client{
		{
			ClientType: "individual",
			Name:       "Иванов Петр",
			City:       "Алматы",
			Phone:      "+7 (701) 123-45-67",
			Address:    "мкр. Самал-2, д. 33",
		},
		{
			ClientType:     "legal_entity",
			Name:           "ТОО АвтоПарк",
			City:           "Астана",
			Phone:          "87017654321",
			Address:        "пр. Кабанбай батыра 11",
			AddressComment: "склад, ворота 3",
		},
	}
	s.mu.Lock()
	for _, c := range clients {
		c.ID = uuid.New()
		c.CreatedAt = time.Now()
		s.clients[c.ID] = c
	}
	s.mu.Unlock()
}
