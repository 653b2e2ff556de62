// Package seed provides helpers to create test and demo catalog data. These
// helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"strconv"

	"holocron/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

var (
	climates = []string{"arid", "temperate", "tropical", "frozen", "murky", "windy", "hot", "artificial temperate"}
	terrains = []string{"desert", "grasslands", "mountains", "jungle", "tundra", "swamp", "gas giant", "cityscape", "ocean"}
	eras     = []string{"BBY", "ABY"}
)

// Factory builds catalog entities with fake but plausible values.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a Factory. A zero seed picks a random one.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// BuildPlanet constructs an unsaved planet.
func (f *Factory) BuildPlanet(overrides ...func(*models.Planet)) models.Planet {
	planet := models.Planet{
		Name:       f.faker.City(),
		Climate:    f.faker.RandomString(climates),
		Terrain:    f.faker.RandomString(terrains),
		Population: strconv.Itoa(f.faker.Number(1000, 2_000_000_000)),
	}
	for _, override := range overrides {
		override(&planet)
	}
	return planet
}

// BuildPerson constructs an unsaved person.
func (f *Factory) BuildPerson(overrides ...func(*models.Person)) models.Person {
	person := models.Person{
		Name:      f.faker.Name(),
		Height:    strconv.Itoa(f.faker.Number(90, 230)),
		Mass:      strconv.Itoa(f.faker.Number(20, 160)),
		HairColor: f.faker.Color(),
		SkinColor: f.faker.Color(),
		EyeColor:  f.faker.Color(),
		BirthYear: fmt.Sprintf("%d%s", f.faker.Number(1, 900), f.faker.RandomString(eras)),
		Gender:    f.faker.Gender(),
	}
	for _, override := range overrides {
		override(&person)
	}
	return person
}

// TestPlanet is the fixed planet created by the smoke-test seed.
func TestPlanet() models.Planet {
	return models.Planet{
		Name:       "Test Planet",
		Climate:    "temperate",
		Terrain:    "plains",
		Population: "123456",
	}
}

// TestPerson is the fixed person created by the smoke-test seed.
func TestPerson() models.Person {
	return models.Person{
		Name:      "Test Person",
		Height:    "180",
		Mass:      "80",
		HairColor: "black",
		SkinColor: "light",
		EyeColor:  "brown",
		BirthYear: "19BBY",
		Gender:    "male",
	}
}
