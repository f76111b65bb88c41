package domain

// Movie is a catalog entry. The API never mutates movies; they are written by
// the seed tooling only.
type Movie struct {
	ID          string   `bson:"_id,omitempty"`
	Title       string   `bson:"title"`
	Description string   `bson:"description"`
	Genre       Genre    `bson:"genre"`
	Director    Director `bson:"director"`
	ImagePath   string   `bson:"image_path"`
	Featured    bool     `bson:"featured"`
}

type Genre struct {
	Name        string `bson:"name"`
	Description string `bson:"description"`
}

type Director struct {
	Name      string `bson:"name"`
	Bio       string `bson:"bio"`
	BirthYear int    `bson:"birth_year"`
	DeathYear *int   `bson:"death_year,omitempty"`
}
