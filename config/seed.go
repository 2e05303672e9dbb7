package config

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maelcorre/bistrot-app/models"
)

// SeedAdmin creates the back-office admin account if no user exists yet.
func SeedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "Admin",
		Email:    envOr("ADMIN_EMAIL", "admin@lebistrot.fr"),
		Password: string(hashed),
		Role:     "admin",
	}
	return db.Create(&admin).Error
}

// SeedMenu loads the Le Bistrot card into an empty database: categories
// plus the dishes with prices, descriptions, allergens and dietary flags.
func SeedMenu(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Menu{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []string{"Entrées", "Plats Principaux", "Desserts", "Boissons"}
	catIDs := make(map[string]uint, len(categories))
	for _, name := range categories {
		cat := models.MenuCategory{Name: name}
		if err := db.Create(&cat).Error; err != nil {
			return err
		}
		catIDs[name] = cat.ID
	}

	type dish struct {
		category    string
		name        string
		price       float64
		description string
		image       string
		allergens   []string
		vegetarian  bool
	}

	dishes := []dish{
		{"Entrées", "Salade César", 8.50, "Laitue romaine, croûtons, parmesan, sauce césar maison",
			"https://images.unsplash.com/photo-1550304943-4f24f54ddde9", []string{"Gluten", "Lactose"}, true},
		{"Entrées", "Soupe à l'oignon", 7.50, "Soupe traditionnelle française gratinée au fromage",
			"https://images.unsplash.com/photo-1547592166-23ac45744acd", []string{"Lactose"}, true},
		{"Entrées", "Foie Gras Maison", 16.50, "Foie gras de canard mi-cuit, chutney de figues, pain brioché",
			"https://images.unsplash.com/photo-1625944525903-70b4cd82d42c", []string{"Gluten"}, false},
		{"Entrées", "Escargots de Bourgogne", 12.00, "6 escargots préparés au beurre persillé",
			"https://images.unsplash.com/photo-1596456519192-da98e6f5a9f8", []string{"Lactose"}, false},
		{"Entrées", "Tartare de Saumon", 14.50, "Saumon frais coupé au couteau, avocat, citron vert",
			"https://images.unsplash.com/photo-1546069901-ba9599a7e63c", []string{"Poisson"}, false},

		{"Plats Principaux", "Steak Frites", 22.00, "Steak de bœuf français, frites maison, sauce au poivre",
			"https://images.unsplash.com/photo-1600891964092-4316c288032e", nil, false},
		{"Plats Principaux", "Saumon Grillé", 24.00, "Saumon frais de l'Atlantique, légumes de saison, sauce citronnée",
			"https://images.unsplash.com/photo-1467003909585-2f8a72700288", []string{"Poisson"}, false},
		{"Plats Principaux", "Coq au Vin", 26.00, "Coq mijoté au vin rouge, lardons, champignons, pommes de terre",
			"https://images.unsplash.com/photo-1621996346565-e3dbc646d9a9", nil, false},
		{"Plats Principaux", "Magret de Canard", 28.00, "Magret de canard rôti, sauce aux fruits rouges, gratin dauphinois",
			"https://images.unsplash.com/photo-1564436872-f6d81182df12", []string{"Lactose"}, false},
		{"Plats Principaux", "Bouillabaisse", 32.00, "Soupe de poissons traditionnelle marseillaise, rouille, croûtons",
			"https://images.unsplash.com/photo-1534766555764-ce878a5e3a2b", []string{"Gluten", "Poisson"}, false},
		{"Plats Principaux", "Ratatouille", 18.00, "Légumes provençaux mijotés, riz basmati",
			"https://images.unsplash.com/photo-1572453800999-e8d2d1589b7c", nil, true},

		{"Desserts", "Crème Brûlée", 7.00, "Dessert traditionnel français à la vanille de Madagascar",
			"https://images.unsplash.com/photo-1470124182917-cc6e71b22ecc", []string{"Lactose", "Œufs"}, true},
		{"Desserts", "Tarte Tatin", 8.00, "Tarte aux pommes caramélisées servie avec crème fraîche",
			"https://images.unsplash.com/photo-1519915028121-7d3463d20b13", []string{"Gluten", "Lactose"}, true},
		{"Desserts", "Profiteroles", 9.50, "Choux à la crème, sauce chocolat chaud, amandes effilées",
			"https://images.unsplash.com/photo-1505976378723-9726b54e9bb9", []string{"Gluten", "Lactose", "Œufs"}, true},
		{"Desserts", "Millefeuille", 8.50, "Pâte feuilletée, crème pâtissière à la vanille, glaçage royal",
			"https://images.unsplash.com/photo-1587314168485-3236d6710814", []string{"Gluten", "Lactose", "Œufs"}, true},
		{"Desserts", "Mousse au Chocolat", 7.50, "Mousse légère au chocolat noir 70%, copeaux de chocolat",
			"https://images.unsplash.com/photo-1511715112108-9acc6c3ff61f", []string{"Lactose", "Œufs"}, true},

		{"Boissons", "Vin Rouge", 6.00, "Verre de vin rouge de la maison - Bordeaux AOC",
			"https://images.unsplash.com/photo-1510812431401-41d2bd2722f3", []string{"Sulfites"}, true},
		{"Boissons", "Eau Minérale", 3.50, "Bouteille d'eau minérale des Alpes françaises 50cl",
			"https://images.unsplash.com/photo-1523362628745-0c100150b504", nil, true},
		{"Boissons", "Vin Blanc", 6.00, "Verre de vin blanc - Chablis AOC",
			"https://images.unsplash.com/photo-1506377247377-2a5b3b417ebb", []string{"Sulfites"}, true},
		{"Boissons", "Champagne", 12.00, "Coupe de champagne - Brut",
			"https://images.unsplash.com/photo-1578911373434-0cb395d2cbfb", []string{"Sulfites"}, true},
		{"Boissons", "Cidre Artisanal", 5.00, "Cidre brut de Normandie 25cl",
			"https://images.unsplash.com/photo-1558642891-54be180ea339", []string{"Sulfites"}, true},
	}

	for _, d := range dishes {
		menu := models.Menu{
			CategoryID:  catIDs[d.category],
			Name:        d.name,
			Price:       d.price,
			Description: d.description,
			ImageURL:    d.image,
			Allergens:   d.allergens,
			Vegetarian:  d.vegetarian,
			Available:   true,
		}
		if err := db.Create(&menu).Error; err != nil {
			return err
		}
	}
	return nil
}
