package services

import (
	"github.com/curaious/workshophub/internal/config"
	"github.com/curaious/workshophub/internal/db"
	"github.com/curaious/workshophub/internal/services/registration"
	"github.com/curaious/workshophub/internal/services/user"
	"github.com/curaious/workshophub/internal/services/workshop"
)

type Services struct {
	User         *user.UserService
	Workshop     *workshop.WorkshopService
	Registration *registration.RegistrationService
}

func NewServices(conf *config.Config) *Services {
	dbconn := db.NewConn(conf)

	return &Services{
		User:         user.NewUserService(user.NewUserRepo(dbconn)),
		Workshop:     workshop.NewWorkshopService(workshop.NewWorkshopRepo(dbconn)),
		Registration: registration.NewRegistrationService(registration.NewRegistrationRepo(dbconn)),
	}
}
