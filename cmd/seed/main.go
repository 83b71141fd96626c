// Command seed fills the database with generated users, assets and
// pedalboards for local development.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"pedalboard/internal/config"
	"pedalboard/internal/model"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var estilos = []string{"rock", "blues", "jazz", "metal", "pop", "country", "reggae"}

func main() {
	users := flag.Int("users", 10, "number of users to create")
	pedalsPerUser := flag.Int("pedals", 5, "pedals per user")
	boardsPerUser := flag.Int("boards", 2, "pedalboards per user")
	flag.Parse()

	cfg := config.Load()
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{}, &model.Pedal{}, &model.Board{},
		&model.Pedalboard{}, &model.PedalPlacement{}, &model.BoardPlacement{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	f := faker.New()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	var allPedals []model.Pedal
	var allUsers []model.User

	for i := 0; i < *users; i++ {
		user := model.User{
			ID:             uuid.New(),
			Name:           f.Person().Name(),
			Email:          fmt.Sprintf("user%d@%s", i, f.Internet().Domain()),
			HashedPassword: string(hash),
			Phone:          f.Phone().Number(),
			Avatar:         model.DefaultAvatar,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("create user: %v", err)
		}
		allUsers = append(allUsers, user)

		for j := 0; j < *pedalsPerUser; j++ {
			pedal := model.Pedal{
				ID:          uuid.New(),
				Name:        f.Company().Name(),
				Description: f.Lorem().Sentence(6),
				Category:    f.RandomStringElement([]string{"overdrive", "delay", "reverb", "fuzz", "chorus"}),
				Image:       model.PlaceholderImage,
				WidthCm:     model.DefaultPedalWidthCm,
				HeightCm:    model.DefaultPedalHeightCm,
				OwnerID:     user.ID,
			}
			if err := db.Create(&pedal).Error; err != nil {
				log.Fatalf("create pedal: %v", err)
			}
			allPedals = append(allPedals, pedal)
		}
	}

	for _, user := range allUsers {
		for j := 0; j < *boardsPerUser; j++ {
			pb := model.Pedalboard{
				ID:      uuid.New(),
				Name:    f.Genre().Name() + " " + f.Lorem().Word(),
				Artist:  f.Person().Name(),
				Estilos: datatypes.NewJSONSlice([]string{estilos[rand.Intn(len(estilos))]}),
				Image:   model.PlaceholderImage,
				OwnerID: user.ID,
			}
			for k := 0; k < 3 && len(allPedals) > 0; k++ {
				pedal := allPedals[rand.Intn(len(allPedals))]
				pedalID := pedal.ID
				pb.Pedals = append(pb.Pedals, model.PedalPlacement{
					ID:           uuid.New(),
					PedalboardID: pb.ID,
					PedalID:      &pedalID,
					X:            float64(rand.Intn(800)),
					Y:            float64(rand.Intn(400)),
					ZIndex:       model.DefaultZIndex,
					WidthCm:      model.DefaultPedalWidthCm,
					HeightCm:     model.DefaultPedalHeightCm,
					Src:          pedal.Image,
					Position:     k,
				})
			}
			if err := db.Create(&pb).Error; err != nil {
				log.Fatalf("create pedalboard: %v", err)
			}
		}
	}

	boardCount := len(allUsers) * (*boardsPerUser)
	log.Printf("seeded %d users, %d pedals, %d pedalboards", len(allUsers), len(allPedals), boardCount)
}
