package migrations

import (
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

func init() {
	m.addMigration(&migration{
		version: "20260810091000",
		up:      mig_20260810091000_workshops_up,
		down:    mig_20260810091000_workshops_down,
	})
}

func mig_20260810091000_workshops_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS workshops (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            title VARCHAR(255) NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            date VARCHAR(20) NOT NULL,
            time VARCHAR(50) NOT NULL DEFAULT '',
            location VARCHAR(255) NOT NULL DEFAULT '',
            audience VARCHAR(255) NOT NULL DEFAULT '',
            duration VARCHAR(50) NOT NULL DEFAULT '',
            fee NUMERIC(10, 2),
            registration_deadline VARCHAR(20) NOT NULL DEFAULT '',
            learning_outcomes TEXT[] NOT NULL DEFAULT '{}',
            status VARCHAR(50) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'ongoing', 'completed')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
            updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_workshops_date ON workshops(date);
    `)
	if err != nil {
		return err
	}

	// Seed the two starter workshops so a fresh install has something to show.
	seed := `
        INSERT INTO workshops (title, description, date, time, location, audience, duration, fee,
            registration_deadline, learning_outcomes)
        SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
        WHERE NOT EXISTS (SELECT 1 FROM workshops WHERE title = $1);
    `

	_, err = tx.Exec(seed,
		"Astronomy and Space Exploration",
		"Embark on a cosmic journey through our solar system and beyond. This workshop introduces participants to the wonders of the universe, with hands-on telescope observations, planetarium experiences, and interactive space science activities.",
		"2023-07-15", "6:00 PM - 9:00 PM", "City Observatory and Science Center",
		"Ages 10 and above", "3 hours", 25.00, "2023-07-10",
		pq.StringArray{
			"Understand basic astronomical concepts and celestial bodies",
			"Learn how to use telescopes and star charts",
			"Discover current space missions and exploration technologies",
			"Identify major constellations visible in the night sky",
		})
	if err != nil {
		return err
	}

	_, err = tx.Exec(seed,
		"Chemistry Lab Experience",
		"Dive into the fascinating world of chemistry with this interactive laboratory workshop. Participants will conduct exciting experiments, learn about chemical reactions, and explore the molecular building blocks that make up our world.",
		"2023-07-22", "10:00 AM - 1:00 PM", "University Science Building, Lab 103",
		"Ages 12 and above", "3 hours", 30.00, "2023-07-17",
		pq.StringArray{
			"Perform safe and engaging chemistry experiments",
			"Understand chemical reactions and their applications",
			"Learn laboratory techniques and safety protocols",
			"Connect chemistry concepts to everyday phenomena",
		})

	return err
}

func mig_20260810091000_workshops_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS workshops;`)
	return err
}
