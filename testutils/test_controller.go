package testutils

import (
	"github.com/itbasis/go-clock"
	"github.com/nacallas/SkidmarkOS-sub000/vault"
)

// TestController bundles the fake upstream servers a controller needs.
type TestController struct {
	Clock     *clock.Mock
	Vault     *MemoryVault
	FakeRoast *FakeRoastServer

	fakeESPN    *FakeESPNServer
	fakeSleeper *FakeSleeperServer
}

func NewTestController(db *TestDB) *TestController {
	c := &TestController{
		Clock:       db.Clock,
		Vault:       NewMemoryVault(),
		FakeRoast:   NewFakeRoastServer(),
		fakeESPN:    NewFakeESPNServer(),
		fakeSleeper: NewFakeSleeperServer(),
	}

	// Most tests want working ESPN credentials from the start.
	c.Vault.Save(ESPNLeagueID, &vault.Credential{S2: GoodS2, SWID: GoodSWID})

	return c
}

func (c *TestController) Close() {
	c.fakeESPN.Close()
	c.fakeSleeper.Close()
	c.FakeRoast.Close()
}

func (c *TestController) ESPNURL() string {
	return c.fakeESPN.URL()
}

func (c *TestController) SleeperURL() string {
	return c.fakeSleeper.URL()
}

func (c *TestController) RoastURL() string {
	return c.FakeRoast.URL()
}
