package engine_test

import (
	"time"

	"github.com/earthstream/projects-backend/internal/projects/domain"
	"github.com/earthstream/projects-backend/internal/projects/engine"
)

// testClock returns a deterministic clock that advances one second per call.
func testClock() func() time.Time {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

func newTestEngine() *engine.Engine {
	return engine.NewWithClock(testClock())
}

func validData(name string, tags []string, lat, lng float64) domain.ProjectData {
	return domain.ProjectData{
		Name:            name,
		Description:     "community gateway deployment",
		GatewayType:     domain.GatewayWifi,
		Images:          domain.ProjectImages{Background: "bg.png", Gallery: []string{"one.png"}},
		Location:        domain.Location{Lat: lat, Lng: lng, Address: "somewhere"},
		PrivateDiscord:  "owner#1234",
		SensorsRequired: 4,
		Tags:            tags,
	}
}
