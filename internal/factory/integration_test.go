package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/manhunt-game/manhunt-go/internal/model"
)

// 1 degree of latitude is close to 111195 meters
const metersPerDegreeLat = 111195.0

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// createGuest creates a guest player positioned northMeters north of the origin
func (s *IntegrationSuite) createGuest(name string, northMeters float64) model.PlayerID {
	location := model.Coordinate{Latitude: northMeters / metersPerDegreeLat, Longitude: 0}
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, name, location)
	s.Require().NoError(err)
	return session.PlayerID
}

// befriend establishes a friendship between two players
func (s *IntegrationSuite) befriend(a, b model.PlayerID) {
	s.Require().NoError(s.app.SocialService.SendRequest(s.ctx, a, b))
	s.Require().NoError(s.app.SocialService.RespondToRequest(s.ctx, a, b, true))
}

// Test: Complete match flow from hosting through the hunter winning
func (s *IntegrationSuite) TestCompleteMatchFlow() {
	alice := s.createGuest("Alice", 0)
	bob := s.createGuest("Bob", 50)
	carol := s.createGuest("Carol", 5000)

	s.befriend(alice, bob)

	// Step 1: Alice hosts a match
	s.app.MockRandom.QueueString("MATCH001")
	m, err := s.app.MatchController.HostMatch(s.ctx, alice, "Park Hunt", model.Coordinate{}, model.DefaultMatchConfig())
	s.Require().NoError(err)
	s.Equal(model.MatchID("MATCH001"), m.ID)

	// Step 2: Bob and Carol join
	s.Require().NoError(s.app.MatchController.JoinMatch(s.ctx, bob, m.ID))
	s.Require().NoError(s.app.MatchController.JoinMatch(s.ctx, carol, m.ID))

	// Step 3: Pick roles and ready up
	s.Require().NoError(s.app.MatchController.AssignRole(s.ctx, alice, m.ID, model.RoleHunter))
	s.Require().NoError(s.app.MatchController.AssignRole(s.ctx, bob, m.ID, model.RoleHider))
	s.Require().NoError(s.app.MatchController.AssignRole(s.ctx, carol, m.ID, model.RoleHider))

	for _, pid := range []model.PlayerID{alice, bob, carol} {
		s.Require().NoError(s.app.MatchController.SetReady(s.ctx, pid, m.ID, true))
	}
	allReady, err := s.app.MatchController.AllReady(s.ctx, m.ID)
	s.Require().NoError(err)
	s.True(allReady)

	// Step 4: Start the match
	s.Require().NoError(s.app.MatchController.StartMatch(s.ctx, m.ID))
	started, _ := s.app.MatchController.GetMatch(s.ctx, m.ID)
	s.True(started.Started)

	// Step 5: Alice sees both hiders, nearest first
	hiders, err := s.app.ProximityService.VisibleHiders(s.ctx, alice)
	s.Require().NoError(err)
	s.Require().Len(hiders, 2)
	s.Equal(bob, hiders[0].Player.ID)
	s.Equal(carol, hiders[1].Player.ID)

	// Step 6: Bob is within the 100m probe, Carol is not
	nearest, meters, err := s.app.ProximityService.NearestHider(s.ctx, alice, 100)
	s.Require().NoError(err)
	s.Equal(bob, nearest.ID)
	s.InDelta(50, meters, 1)

	// Step 7: Catch Bob; Carol is too far away to probe
	s.Require().NoError(s.app.MatchController.CatchHider(s.ctx, alice, m.ID, bob))
	_, _, err = s.app.ProximityService.NearestHider(s.ctx, alice, 100)
	s.ErrorIs(err, model.ErrNoHiderNearby)

	// Step 8: Catch Carol too; no hiders remain
	s.Require().NoError(s.app.MatchController.CatchHider(s.ctx, alice, m.ID, carol))
	_, _, err = s.app.ProximityService.NearestHider(s.ctx, alice, 100)
	s.ErrorIs(err, model.ErrNoHidersLeft)

	// Step 9: Shared experience over match pairs; only Alice and Bob are friends
	s.Require().NoError(s.app.SocialService.AddExperienceWithFriends(s.ctx, alice, 40))
	average, err := s.app.ExperienceService.AverageForMatch(s.ctx, m.ID)
	s.Require().NoError(err)
	s.InDelta(40.0, average, 1e-9)

	// Step 10: End the match; members are detached
	s.Require().NoError(s.app.MatchController.EndMatch(s.ctx, alice))
	_, err = s.app.MatchController.GetMatch(s.ctx, m.ID)
	s.ErrorIs(err, model.ErrMatchNotFound)

	bobRecord, err := s.app.Storage.GetPlayer(s.ctx, bob)
	s.Require().NoError(err)
	s.Nil(bobRecord.CurrentMatch)
}

// Test: Host leaving tears the match down for everyone
func (s *IntegrationSuite) TestHostLeavingEndsMatch() {
	alice := s.createGuest("Alice", 0)
	bob := s.createGuest("Bob", 50)

	s.app.MockRandom.QueueString("MATCH001")
	m, err := s.app.MatchController.HostMatch(s.ctx, alice, "Short Hunt", model.Coordinate{}, model.DefaultMatchConfig())
	s.Require().NoError(err)
	s.Require().NoError(s.app.MatchController.JoinMatch(s.ctx, bob, m.ID))

	s.Require().NoError(s.app.MatchController.LeaveMatch(s.ctx, alice))

	_, err = s.app.MatchController.GetMatch(s.ctx, m.ID)
	s.ErrorIs(err, model.ErrMatchNotFound)

	bobRecord, err := s.app.Storage.GetPlayer(s.ctx, bob)
	s.Require().NoError(err)
	s.Nil(bobRecord.CurrentMatch)
}

// Test: Capacity is enforced across hosting and joining
func (s *IntegrationSuite) TestMatchCapacity() {
	alice := s.createGuest("Alice", 0)
	bob := s.createGuest("Bob", 50)
	carol := s.createGuest("Carol", 100)

	config := model.DefaultMatchConfig()
	config.MaxHunters = 1
	config.MaxHiders = 1

	s.app.MockRandom.QueueString("MATCH001")
	m, err := s.app.MatchController.HostMatch(s.ctx, alice, "Tiny Hunt", model.Coordinate{}, config)
	s.Require().NoError(err)

	s.Require().NoError(s.app.MatchController.JoinMatch(s.ctx, bob, m.ID))
	s.ErrorIs(s.app.MatchController.JoinMatch(s.ctx, carol, m.ID), model.ErrMatchFull)
}

// Test: Discovery queries stitch social graph and location together
func (s *IntegrationSuite) TestDiscoveryQueries() {
	alice := s.createGuest("Alice", 0)
	bob := s.createGuest("Bob", 400)
	carol := s.createGuest("Carol", 800)

	s.befriend(alice, bob)

	// Carol hosts an open match nearby
	s.app.MockRandom.QueueString("MATCH001")
	_, err := s.app.MatchController.HostMatch(s.ctx, carol, "Carol's Hunt", model.Coordinate{Latitude: 800 / metersPerDegreeLat}, model.DefaultMatchConfig())
	s.Require().NoError(err)

	// Bob hosts one too, so Alice can find a friend's match
	s.app.MockRandom.QueueString("MATCH002")
	_, err = s.app.MatchController.HostMatch(s.ctx, bob, "Bob's Hunt", model.Coordinate{Latitude: 400 / metersPerDegreeLat}, model.DefaultMatchConfig())
	s.Require().NoError(err)

	aliceRecord, err := s.app.Storage.GetPlayer(s.ctx, alice)
	s.Require().NoError(err)

	nearby, err := s.app.ProximityService.NearbyPlayers(s.ctx, aliceRecord.Location, 1.0, alice)
	s.Require().NoError(err)
	s.Require().Len(nearby, 2)
	s.Equal(bob, nearby[0].Player.ID)

	matches, err := s.app.ProximityService.NearbyMatches(s.ctx, aliceRecord.Location, 1.0)
	s.Require().NoError(err)
	s.Len(matches, 2)

	friendMatches, err := s.app.ProximityService.MatchesOfFriends(s.ctx, alice)
	s.Require().NoError(err)
	s.Require().Len(friendMatches, 1)
	s.Equal(model.MatchID("MATCH002"), friendMatches[0].ID)

	// Carol is the only player Alice has no social tie to
	strangers, err := s.app.ProximityService.NonFriendPlayers(s.ctx, alice)
	s.Require().NoError(err)
	s.Require().Len(strangers, 1)
	s.Equal(carol, strangers[0].Player.ID)
}
