package report

import (
	"context"
	"time"

	"github.com/absensia/absensi-backend-go/internal/domain/employee"
	"github.com/absensia/absensi-backend-go/internal/domain/punch"
	"github.com/absensia/absensi-backend-go/internal/domain/report"
	"github.com/absensia/absensi-backend-go/internal/domain/schedule"
)

type ReportServiceImpl struct {
	punchRepo punch.Repository
	resolver  employee.Resolver
}

func NewReportService(punchRepo punch.Repository, resolver employee.Resolver) report.Service {
	return &ReportServiceImpl{punchRepo: punchRepo, resolver: resolver}
}

// Today implements report.Service.
func (s *ReportServiceImpl) Today(ctx context.Context) (report.TodayRecapResponse, error) {
	day := schedule.Day(time.Now())

	punches, err := s.punchRepo.ListByDay(ctx, day)
	if err != nil {
		return report.TodayRecapResponse{}, err
	}

	resp := report.TodayRecapResponse{
		Date:  day,
		Items: make([]report.RecapItem, 0, len(punches)),
	}

	for _, p := range punches {
		item := report.RecapItem{
			EmployeeID:   p.Meta.EmployeeID,
			Name:         p.Name,
			Time:         "-",
			CheckInTime:  p.CheckInTime,
			CheckOutTime: p.CheckOutTime,
		}
		if item.EmployeeID == "" {
			if id, err := s.resolver.Resolve(ctx, p.Name); err == nil {
				item.EmployeeID = id
			}
		}
		if p.CheckInTime != nil {
			item.Time = *p.CheckInTime
		}

		switch {
		case p.Meta.ReasonName != "":
			item.Status = "Absent"
			item.Reason = p.Meta.ReasonName
			resp.Counts.Absent++
		case p.CheckInStatus != nil:
			item.Status = *p.CheckInStatus
			if *p.CheckInStatus == schedule.StatusLate {
				resp.Counts.Late++
			} else {
				resp.Counts.OnTime++
			}
		default:
			// A row without a stored status has not been reconciled yet;
			// report it the same way a fresh check-in would be.
			item.Status = schedule.StatusOnTime
			resp.Counts.OnTime++
		}

		resp.Items = append(resp.Items, item)
	}

	return resp, nil
}
