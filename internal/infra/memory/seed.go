package memory

import (
	"github.com/CaduValezzi/FIAP-3ESA-csharp-cp3-2025/internal/domain/model"

	"github.com/shopspring/decimal"
)

// SeedDemo はローカル確認用のバンドとシャツを入れる
func SeedDemo(s *Store) {
	metallica := s.AddBand("Metallica")
	maiden := s.AddBand("Iron Maiden")
	nirvana := s.AddBand("Nirvana")

	s.AddShirt(model.Shirt{Name: "Master of Puppets", Size: "M", Color: "Preta", Stock: 10, Price: decimal.RequireFromString("89.90"), BandID: metallica.ID})
	s.AddShirt(model.Shirt{Name: "Ride the Lightning", Size: "G", Color: "Preta", Stock: 5, Price: decimal.RequireFromString("89.90"), BandID: metallica.ID})
	s.AddShirt(model.Shirt{Name: "The Trooper", Size: "M", Color: "Branca", Stock: 8, Price: decimal.RequireFromString("79.90"), BandID: maiden.ID})
	s.AddShirt(model.Shirt{Name: "Nevermind", Size: "P", Color: "Azul", Stock: 12, Price: decimal.RequireFromString("69.90"), BandID: nirvana.ID})
}
