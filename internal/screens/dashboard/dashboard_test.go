package dashboard

import (
	"strings"
	"testing"

	"github.com/nilabh/campusmate/internal/api"
)

func loadedScreen(admin bool) *DashboardScreen {
	s := New(nil, nil, "iitm/a", admin)
	s.Update(overviewLoadedMsg{Overview: &api.DashboardOverview{
		Systems: []api.DashboardSystem{
			{ID: "ingest", Name: "Document ingestion", Status: "operational"},
		},
	}})
	return s
}

func TestSystemsPanel_AdminOnly(t *testing.T) {
	if view := loadedScreen(false).View(80, 24); strings.Contains(view, "Document ingestion") {
		t.Error("student account must not see the systems panel")
	}
	if view := loadedScreen(true).View(80, 24); !strings.Contains(view, "Document ingestion") {
		t.Error("admin account should see the systems panel")
	}
}
