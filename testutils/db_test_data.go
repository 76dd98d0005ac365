package testutils

import (
	"context"
	"log"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/nacallas/SkidmarkOS-sub000/containers"
	"github.com/nacallas/SkidmarkOS-sub000/db"
	"github.com/nacallas/SkidmarkOS-sub000/model"
)

// Canonical teams used across db and controller tests.
var (
	GridironGurus = model.Team{
		ID:            "1",
		Name:          "Gridiron Gurus",
		OwnerName:     "Alex Miller",
		Wins:          7,
		Losses:        1,
		Ties:          0,
		PointsFor:     1204.52,
		PointsAgainst: 1010.18,
		Streak:        &model.Streak{Type: model.STREAK_WIN, Length: 4},
		TopPlayers: []model.TopPlayer{
			{ID: "3918298", Name: "Josh Allen", Position: model.POS_QB, Points: 318.42},
		},
	}
	WeekWarriors = model.Team{
		ID:            "2",
		Name:          "Week Warriors",
		OwnerName:     "commish99",
		Wins:          5,
		Losses:        3,
		Ties:          0,
		PointsFor:     1098.3,
		PointsAgainst: 1042.7,
		Streak:        &model.Streak{Type: model.STREAK_LOSS, Length: 2},
	}
	WaiverWizards = model.Team{
		ID:            "4",
		Name:          "The Waiver Wizards",
		OwnerName:     "Unknown Owner",
		Wins:          1,
		Losses:        7,
		PointsFor:     805.4,
		PointsAgainst: 1190.3,
		Streak:        &model.Streak{Type: model.STREAK_LOSS, Length: 7},
	}
)

func TestTeams() []model.Team {
	return []model.Team{GridironGurus, WeekWarriors, WaiverWizards}
}

type TestDB struct {
	container *containers.DBContainer
	DB        db.DB
	Clock     *clock.Mock
}

func NewTestDB() *TestDB {
	container := containers.NewDBContainer()

	// Mid regular season. Tests move this around as needed.
	clock := clock.NewMock()
	clock.Set(time.Date(2024, 10, 15, 9, 0, 0, 0, time.UTC))

	db, err := db.New(context.Background(), container.ConnectionString(), clock)
	if err != nil {
		log.Fatalf("error connecting to db in test container: %v", err)
	}

	return &TestDB{
		container: container,
		DB:        db,
		Clock:     clock,
	}
}

func (db *TestDB) Shutdown() {
	db.container.Shutdown()
}
