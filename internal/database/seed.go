package database

import (
	"github.com/franciscosanchezn/gin-mexitoes-api/internal/models"
	"gorm.io/gorm"
)

const (
	imgMomos       = "https://images.unsplash.com/photo-1704963925502-7c5c23791fb1?w=400&q=80"
	imgChickenMomo = "https://images.unsplash.com/photo-1599487488170-d11ec9c172f0?w=400&q=80"
	imgLobster     = "https://images.unsplash.com/photo-1606491956689-2ea866880c84?w=400&q=80"
	imgBurger      = "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=400&q=80"
	imgChicken555  = "https://images.unsplash.com/photo-1562967914-608f82629710?w=400&q=80"
	imgPepper      = "https://images.unsplash.com/photo-1603360946369-dc9bb6258143?w=400&q=80"
	imgSandwich    = "https://images.unsplash.com/photo-1528735602780-2552fd46c7af?w=400&q=80"
	imgPaneer      = "https://images.unsplash.com/photo-1567188040759-fb8a883dc6d8?w=400&q=80"
	imgGobi        = "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=400&q=80"
	imgMushroom    = "https://images.unsplash.com/photo-1604152135912-04a022e23696?w=400&q=80"
	imgDal         = "https://images.unsplash.com/photo-1546833998-877b37c2e5c6?w=400&q=80"
	imgPasta       = "https://images.unsplash.com/photo-1621996346565-e3dbc646d9a9?w=400&q=80"
)

// MenuCatalog is the catalog loaded into an empty menu table
var MenuCatalog = []models.MenuItem{
	// Quick Bites
	{Name: "Paneer Momos", Description: "Soft steamed dumplings stuffed with spiced paneer, served with red chutney", Price: 80, Category: "Quick Bites", ImageURL: imgMomos, Rating: 4.5, PrepTime: "10-15 min", IsVeg: true},
	{Name: "Paneer Tikka Momos", Description: "Smoky paneer tikka filling wrapped in a tender dumpling shell", Price: 90, Category: "Quick Bites", ImageURL: imgMomos, Rating: 4.6, PrepTime: "10-15 min", IsVeg: true},
	{Name: "Chicken Tikka Momos", Description: "Juicy chicken tikka stuffed dumplings with house-made chilli dip", Price: 90, Category: "Quick Bites", ImageURL: imgChickenMomo, Rating: 4.7, PrepTime: "10-15 min", IsSpicy: true},
	{Name: "Lobster Bites", Description: "Crispy golden lobster bites seasoned with spices, served with dip", Price: 90, Category: "Quick Bites", ImageURL: imgLobster, Rating: 4.8, PrepTime: "15-20 min"},
	{Name: "Chicken Jumbo Burger", Description: "Big, juicy chicken patty with fresh veggies, cheese & special sauce", Price: 120, Category: "Quick Bites", ImageURL: imgBurger, Rating: 4.6, PrepTime: "15-20 min"},

	// Starters
	{Name: "Chicken 555", Description: "Crispy fried chicken tossed in a tangy 555 masala glaze", Price: 110, Category: "Starters", ImageURL: imgChicken555, Rating: 4.7, PrepTime: "15-20 min", IsSpicy: true},
	{Name: "Chicken 777", Description: "Triple-spiced chicken starter with aromatic herbs and peppers", Price: 110, Category: "Starters", ImageURL: imgChicken555, Rating: 4.8, PrepTime: "15-20 min", IsSpicy: true},
	{Name: "Hot Pepper Chicken", Description: "Fiery chicken tossed with fresh green and red peppers", Price: 100, Category: "Starters", ImageURL: imgPepper, Rating: 4.6, PrepTime: "15-20 min", IsSpicy: true},
	{Name: "Kerala Chicken", Description: "Traditional Kerala-style fried chicken with coconut and curry leaves", Price: 100, Category: "Starters", ImageURL: imgPepper, Rating: 4.9, PrepTime: "20-25 min", IsSpicy: true},
	{Name: "Chicken Chukka", Description: "Dry-tossed chicken with onions, tomatoes and South Indian spices", Price: 100, Category: "Starters", ImageURL: imgPepper, Rating: 4.7, PrepTime: "20-25 min", IsSpicy: true},
	{Name: "Fruit Sandwich", Description: "Fresh seasonal fruits layered with cream between soft bread slices", Price: 60, Category: "Starters", ImageURL: imgSandwich, Rating: 4.4, PrepTime: "5-10 min", IsVeg: true},

	// Masalas
	{Name: "Paneer Masala", Description: "Cottage cheese cubes simmered in a rich, spiced tomato-onion gravy", Price: 110, Category: "Masalas", ImageURL: imgPaneer, Rating: 4.6, PrepTime: "20-25 min", IsVeg: true},
	{Name: "Gobi Masala", Description: "Cauliflower florets cooked in a flavourful masala gravy", Price: 90, Category: "Masalas", ImageURL: imgGobi, Rating: 4.4, PrepTime: "20-25 min", IsVeg: true},
	{Name: "Mushroom Masala", Description: "Tender mushrooms in a creamy, spiced onion-tomato gravy", Price: 90, Category: "Masalas", ImageURL: imgMushroom, Rating: 4.5, PrepTime: "20-25 min", IsVeg: true},
	{Name: "Corn Masala", Description: "Sweet corn kernels tossed in a tangy, mildly spiced masala", Price: 90, Category: "Masalas", ImageURL: imgGobi, Rating: 4.3, PrepTime: "15-20 min", IsVeg: true},
	{Name: "Paneer Butter Masala", Description: "Classic paneer in a velvety, buttery tomato cream gravy", Price: 120, Category: "Masalas", ImageURL: imgPaneer, Rating: 4.8, PrepTime: "20-25 min", IsVeg: true},
	{Name: "Dal Veg", Description: "Comforting lentil curry slow-cooked with aromatic spices", Price: 90, Category: "Masalas", ImageURL: imgDal, Rating: 4.5, PrepTime: "20-25 min", IsVeg: true},

	// Pasta
	{Name: "Cheese Sauce Pasta", Description: "Penne pasta tossed in a rich, creamy four-cheese sauce", Price: 100, Category: "Pasta", ImageURL: imgPasta, Rating: 4.5, PrepTime: "15-20 min", IsVeg: true},
	{Name: "White Sauce Pasta", Description: "Pasta in a smooth, garlicky béchamel sauce with herbs", Price: 100, Category: "Pasta", ImageURL: imgPasta, Rating: 4.4, PrepTime: "15-20 min", IsVeg: true},
}

// SeedMenu loads MenuCatalog when the menu table is empty.
// It reports whether anything was inserted.
func SeedMenu(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&models.MenuItem{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		log.Info("Menu already seeded")
		return false, nil
	}

	log.WithField("items", len(MenuCatalog)).Info("Menu is empty, seeding catalog")
	items := make([]models.MenuItem, len(MenuCatalog))
	copy(items, MenuCatalog)
	if err := db.Create(&items).Error; err != nil {
		return false, err
	}
	return true, nil
}
