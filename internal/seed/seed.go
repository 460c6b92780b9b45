// Package seed fills an empty database with the launch catalog.
package seed

import (
	"gorm.io/gorm"

	"github.com/tubarao/storefront/internal/models"
)

func f(v float64) *float64 { return &v }
func u(v uint) *uint       { return &v }

func categories() []models.Category {
	return []models.Category{
		{Name: "Masculino", Slug: "masculino", Image: "https://images.unsplash.com/photo-1617127365659-c47fa864d8bc?w=400&h=300&fit=crop", Icon: "👔"},
		{Name: "Feminino", Slug: "feminino", Image: "https://images.unsplash.com/photo-1594633313593-bab3825d0caf?w=400&h=300&fit=crop", Icon: "👗"},
		{Name: "Infantil", Slug: "infantil", Image: "https://images.unsplash.com/photo-1519689373023-dd07c7988603?w=400&h=300&fit=crop", Icon: "🧸"},
		{Name: "Acessórios", Slug: "acessorios", Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=300&fit=crop", Icon: "👜"},
	}
}

func products() []models.Product {
	return []models.Product{
		{Name: "Camiseta Premium Algodão Pima", Price: 89.90, OriginalPrice: f(119.90), Discount: u(25), Category: "Masculino", Image: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400&h=500&fit=crop", Rating: 4.8, Reviews: 124, Featured: true, Sizes: []string{"P", "M", "G", "GG"}, Description: "Camiseta confeccionada em algodão Pima peruano, oferecendo maciez incomparável e durabilidade."},
		{Name: "Jeans Skinny Stretch Masculino", Price: 159.90, OriginalPrice: f(199.90), Discount: u(20), Category: "Masculino", Image: "https://images.unsplash.com/photo-1542272604-787c3835535d?w=400&h=500&fit=crop", Rating: 4.6, Reviews: 89, Featured: true, Sizes: []string{"38", "40", "42", "44", "46"}, Description: "Calça jeans com tecnologia stretch para maior conforto e mobilidade."},
		{Name: "Polo Piquet Clássica", Price: 79.90, Category: "Masculino", Image: "https://images.unsplash.com/photo-1586790170083-2f9ceadc732d?w=400&h=500&fit=crop", Rating: 4.5, Reviews: 156, Sizes: []string{"P", "M", "G", "GG"}, Description: "Polo em piquet de algodão com acabamento refinado e corte clássico."},
		{Name: "Camisa Social Slim Fit", Price: 129.90, Category: "Masculino", Image: "https://images.unsplash.com/photo-1602810319428-019690571b5b?w=400&h=500&fit=crop", Rating: 4.7, Reviews: 73, Sizes: []string{"38", "40", "42", "44"}, Description: "Camisa social em algodão egípcio com modelagem slim fit para um look moderno."},
		{Name: "Vestido Midi Floral Primavera", Price: 149.90, OriginalPrice: f(199.90), Discount: u(25), Category: "Feminino", Image: "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=400&h=500&fit=crop", Rating: 4.9, Reviews: 201, Featured: true, Sizes: []string{"PP", "P", "M", "G", "GG"}, Description: "Vestido midi em crepe com estampa floral exclusiva, perfeito para ocasiões especiais."},
		{Name: "Blusa Básica Decote V", Price: 59.90, Category: "Feminino", Image: "https://images.unsplash.com/photo-1551488831-00b8d0c5b7ac?w=400&h=500&fit=crop", Rating: 4.4, Reviews: 312, Featured: true, Sizes: []string{"PP", "P", "M", "G", "GG"}, Description: "Blusa básica em viscose com decote V, essencial para o guarda-roupa feminino."},
		{Name: "Calça Jeans Cintura Alta", Price: 139.90, Category: "Feminino", Image: "https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=400&h=500&fit=crop", Rating: 4.6, Reviews: 187, Sizes: []string{"36", "38", "40", "42", "44"}, Description: "Calça jeans cintura alta com modelagem que valoriza a silhueta feminina."},
		{Name: "Blazer Alfaiataria Feminino", Price: 219.90, Category: "Feminino", Image: "https://images.unsplash.com/photo-1594633312681-425c7b97ccd1?w=400&h=500&fit=crop", Rating: 4.8, Reviews: 94, Featured: true, Sizes: []string{"PP", "P", "M", "G"}, Description: "Blazer de alfaiataria em tecido nobre, ideal para looks executivos e sociais."},
		{Name: "Conjunto Moletom Tubarão Kids", Price: 89.90, Category: "Infantil", Image: "https://images.unsplash.com/photo-1503919005314-30d93d07d823?w=400&h=500&fit=crop", Rating: 4.7, Reviews: 145, Featured: true, Sizes: []string{"2", "4", "6", "8", "10"}, Description: "Conjunto de moletom com estampa de tubarão, super confortável para os pequenos."},
		{Name: "Vestido Infantil Unicórnio", Price: 69.90, Category: "Infantil", Image: "https://images.unsplash.com/photo-1518831959646-742c3a14ebf7?w=400&h=500&fit=crop", Rating: 4.8, Reviews: 89, Sizes: []string{"2", "4", "6", "8"}, Description: "Vestido infantil com estampa de unicórnio e detalhes em glitter."},
		{Name: "Bermuda Jeans Infantil", Price: 49.90, Category: "Infantil", Image: "https://images.unsplash.com/photo-1519238263530-99bdd11df2ea?w=400&h=500&fit=crop", Rating: 4.5, Reviews: 67, Sizes: []string{"2", "4", "6", "8", "10", "12"}, Description: "Bermuda jeans confortável e resistente para brincadeiras ao ar livre."},
		{Name: "Bolsa Transversal Couro Sintético", Price: 79.90, OriginalPrice: f(99.90), Discount: u(20), Category: "Acessórios", Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=400&h=500&fit=crop", Rating: 4.6, Reviews: 203, Featured: true, Sizes: []string{"Único"}, Description: "Bolsa transversal em couro sintético com acabamento premium e múltiplos compartimentos."},
		{Name: "Óculos de Sol Aviador", Price: 129.90, Category: "Acessórios", Image: "https://images.unsplash.com/photo-1511499767150-a48a237f0083?w=400&h=500&fit=crop", Rating: 4.4, Reviews: 156, Sizes: []string{"Único"}, Description: "Óculos de sol estilo aviador com proteção UV400 e armação em metal."},
		{Name: "Relógio Digital Esportivo", Price: 199.90, Category: "Acessórios", Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=400&h=500&fit=crop", Rating: 4.7, Reviews: 98, Sizes: []string{"Único"}, Description: "Relógio digital esportivo à prova d'água com múltiplas funções."},
		{Name: "Carteira Masculina Couro", Price: 89.90, Category: "Acessórios", Image: "https://images.unsplash.com/photo-1627123424574-724758594e93?w=400&h=500&fit=crop", Rating: 4.8, Reviews: 234, Sizes: []string{"Único"}, Description: "Carteira masculina em couro legítimo com porta-cartões e porta-moedas."},
	}
}

// Run inserts the launch catalog when the tables are empty. Re-running on a
// populated database does nothing.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		cats := categories()
		if err := db.Create(&cats).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		prods := products()
		if err := db.Create(&prods).Error; err != nil {
			return err
		}
	}
	return nil
}
