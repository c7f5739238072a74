package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	IdentityRepository   *IdentityRepository
	TokenRepository      *TokenRepository
	StudentRepository    *StudentRepository
	CollegeRepository    *CollegeRepository
	RosterRepository     *RosterRepository
	EmployerRepository   *EmployerRepository
	InternshipRepository *InternshipRepository
	LogbookRepository    *LogbookRepository
	ProfileRepository    *ProfileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		IdentityRepository:   NewIdentityRepository(db),
		TokenRepository:      NewTokenRepository(db),
		StudentRepository:    NewStudentRepository(db),
		CollegeRepository:    NewCollegeRepository(db),
		RosterRepository:     NewRosterRepository(db),
		EmployerRepository:   NewEmployerRepository(db),
		InternshipRepository: NewInternshipRepository(db),
		LogbookRepository:    NewLogbookRepository(db),
		ProfileRepository:    NewProfileRepository(db),
	}
}
