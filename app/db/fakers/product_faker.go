package fakers

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/gsk-limited/storefront/app/models"
	"github.com/shopspring/decimal"
)

var (
	productKinds = []string{"Centrifugal Pump", "Submersible Pump", "Gate Valve", "Ball Valve", "Check Valve", "PVC Pipe", "Pressure Gauge", "Induction Motor"}
	brands       = []string{"Grundfos", "KSB", "Kirloskar", "Lowara", "Pedrollo"}
)

func CategoryFaker(name string, featured bool) *models.Category {
	description := faker.Sentence()
	image := fmt.Sprintf("https://picsum.photos/seed/%s/600/400", slug.Make(name))
	return &models.Category{
		Name:        name,
		Slug:        slug.Make(name),
		Description: &description,
		Image:       &image,
		Featured:    featured,
	}
}

// ProductFaker builds an unsaved product. A nil category leaves it uncategorized.
func ProductFaker(category *models.Category) *models.Product {
	kind := productKinds[rand.Intn(len(productKinds))]
	name := fmt.Sprintf("%s %s", kind, strings.ToUpper(uuid.NewString()[:4]))
	brand := brands[rand.Intn(len(brands))]
	inStock := rand.Intn(4) != 0

	images := make([]string, rand.Intn(3)+1)
	for i := range images {
		images[i] = fmt.Sprintf("https://picsum.photos/seed/%s-%d/800/800", slug.Make(name), i)
	}

	product := &models.Product{
		Name:        name,
		Slug:        slug.Make(name),
		Description: faker.Paragraph(),
		Images:      images,
		InStock:     &inStock,
		Brand:       &brand,
	}
	// roughly one in five products is "price on request"
	if rand.Intn(5) != 0 {
		product.Price = decimal.NewNullDecimal(fakePrice())
	}
	if category != nil {
		product.CategoryID = &category.ID
	}
	return product
}

func PartnerFaker() *models.Partner {
	name := brands[rand.Intn(len(brands))] + " " + faker.Word()
	return &models.Partner{
		Name: name,
		Logo: fmt.Sprintf("https://picsum.photos/seed/%s/200/200", slug.Make(name)),
	}
}

func fakePrice() decimal.Decimal {
	return decimal.NewFromFloat(500 + rand.Float64()*250000).Round(2)
}
