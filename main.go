package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"github.com/nacallas/SkidmarkOS-sub000/controller"
	"github.com/nacallas/SkidmarkOS-sub000/db"
	"github.com/nacallas/SkidmarkOS-sub000/platforms/espn"
	"github.com/nacallas/SkidmarkOS-sub000/platforms/sleeper"
	"github.com/nacallas/SkidmarkOS-sub000/roast"
	"github.com/nacallas/SkidmarkOS-sub000/vault"
	"github.com/nacallas/SkidmarkOS-sub000/web"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}
	connString := os.Getenv("POSTGRES_CONN_STR")

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	season := time.Now().Year()
	if s := os.Getenv("SEASON"); s != "" {
		season, err = strconv.Atoi(s)
		if err != nil {
			log.Fatalf("error parsing season: %v", err)
		}
	}

	vaultPath := os.Getenv("VAULT_PATH")
	if vaultPath == "" {
		vaultPath = "credentials.json"
	}

	clock := clock.New()
	db, err := db.New(context.Background(), connString, clock)
	if err != nil {
		log.Fatalf("cannot connect to DB: %v", err)
	}

	espnClient, err := espn.New(vault.NewFileVault(vaultPath), season)
	if err != nil {
		log.Fatalf("error creating espn client: %v", err)
	}

	sleeperClient, err := sleeper.New()
	if err != nil {
		log.Fatalf("error creating sleeper client: %v", err)
	}

	roastClient, err := roast.New(os.Getenv("ROAST_API_URL"), os.Getenv("ROAST_API_KEY"))
	if err != nil {
		log.Fatalf("error creating roast client: %v", err)
	}

	ctrl, err := controller.New(clock, db, espnClient, sleeperClient, roastClient)
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Surface credential expirations in the log so the operator knows a
	// league needs to be re-authenticated.
	go func() {
		for leagueID := range ctrl.CredentialExpirations() {
			log.Printf("espn credentials for league %s were rejected and removed, re-authentication needed", leagueID)
		}
	}()

	// Setup a job that refreshes stale league snapshots every 24-hours
	wg.Add(1)
	go ctrl.RunPeriodicSnapshotRefresh(24*time.Hour, shutdown, wg)

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
