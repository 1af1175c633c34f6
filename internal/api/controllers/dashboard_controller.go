package controllers

import (
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/curaious/workshophub/internal/perrors"
	"github.com/curaious/workshophub/internal/services"
	registration2 "github.com/curaious/workshophub/internal/services/registration"
	"github.com/curaious/workshophub/internal/services/user"
	workshop2 "github.com/curaious/workshophub/internal/services/workshop"
)

// DashboardResponse merges registration activity with the workshop schedule
type DashboardResponse struct {
	TotalRegistrations      int                           `json:"totalRegistrations"`
	RecentRegistrations     int                           `json:"recentRegistrations"`
	UpcomingWorkshops       []*workshop2.Workshop         `json:"upcomingWorkshops"`
	NextWorkshopDate        string                        `json:"nextWorkshopDate"`
	InterestBreakdown       []registration2.InterestCount `json:"workshopInterestBreakdown"`
	MostPopularInterest     string                        `json:"mostPopularInterest"`
	PopularInterestCount    int                           `json:"popularInterestRegistrations"`
	RecentRegistrationsList []*registration2.Registration `json:"recentRegistrationsList"`
}

func RegisterDashboardRoutes(r *router.Router, svc *services.Services) {
	r.GET("/api/admin/dashboard", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		if requireRole(ctx, stdCtx, user.RoleAdmin) == nil {
			return
		}

		stats, err := svc.Registration.DashboardStats(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to compute dashboard stats", perrors.NewErrInternalServerError("Failed to compute dashboard stats", err))
			return
		}

		workshops, err := svc.Workshop.List(stdCtx)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to list workshops", perrors.NewErrInternalServerError("Failed to list workshops", err))
			return
		}

		upcoming := upcomingWorkshops(workshops, time.Now())

		nextDate := "No upcoming workshops"
		if len(upcoming) > 0 {
			nextDate = upcoming[0].Date
		}

		writeOK(ctx, stdCtx, "Dashboard stats retrieved successfully", DashboardResponse{
			TotalRegistrations:      stats.TotalRegistrations,
			RecentRegistrations:     stats.RecentRegistrations,
			UpcomingWorkshops:       upcoming,
			NextWorkshopDate:        nextDate,
			InterestBreakdown:       stats.InterestBreakdown,
			MostPopularInterest:     stats.MostPopularInterest,
			PopularInterestCount:    stats.PopularInterestCount,
			RecentRegistrationsList: stats.RecentRegistrationsList,
		})
	})
}

// upcomingWorkshops keeps workshops dated strictly after now. The input is
// already sorted by date ascending; workshops with unparseable dates are
// skipped.
func upcomingWorkshops(workshops []*workshop2.Workshop, now time.Time) []*workshop2.Workshop {
	upcoming := []*workshop2.Workshop{}
	for _, w := range workshops {
		date, err := time.Parse("2006-01-02", w.Date)
		if err != nil {
			continue
		}
		if date.After(now) {
			upcoming = append(upcoming, w)
		}
	}
	return upcoming
}
