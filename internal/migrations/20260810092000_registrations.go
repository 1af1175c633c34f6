package migrations

import "github.com/jmoiron/sqlx"

func init() {
	m.addMigration(&migration{
		version: "20260810092000",
		up:      mig_20260810092000_registrations_up,
		down:    mig_20260810092000_registrations_down,
	})
}

func mig_20260810092000_registrations_up(tx *sqlx.Tx) error {
	_, err := tx.Exec(`
        CREATE TABLE IF NOT EXISTS registrations (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            user_id UUID REFERENCES users(id) ON DELETE SET NULL,
            workshop_id UUID NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
            name VARCHAR(255) NOT NULL,
            email VARCHAR(255) NOT NULL,
            phone VARCHAR(50) NOT NULL DEFAULT '',
            age VARCHAR(20) NOT NULL DEFAULT '',
            workshop_interest VARCHAR(100) NOT NULL DEFAULT '',
            message TEXT,
            agree_to_terms BOOLEAN NOT NULL DEFAULT FALSE,
            status VARCHAR(50) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
            created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
        );
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_registrations_workshop_id ON registrations(workshop_id);
    `)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
        CREATE INDEX IF NOT EXISTS idx_registrations_user_id ON registrations(user_id);
    `)
	if err != nil {
		return err
	}

	return nil
}

func mig_20260810092000_registrations_down(tx *sqlx.Tx) error {
	_, err := tx.Exec(`DROP TABLE IF EXISTS registrations;`)
	return err
}
