package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"fleetops/internal/domain/models"
	"fleetops/internal/repositories"
	"fleetops/internal/utils"

	"github.com/phpdave11/gofpdf"
)

type manifestData struct {
	Trip        models.Trip
	Vehicle     models.Vehicle
	Driver      models.Driver
	Origin      models.Place
	Destination models.Place
	Roster      []models.TripPassenger
}

// Manifest renders the passenger manifest of a trip as a PDF.
func (s TripService) Manifest(ctx context.Context, tripID int64) ([]byte, string, error) {
	data, err := s.loadManifest(ctx, tripID)
	if err != nil {
		return nil, "", s.fail("manifest", err)
	}
	utils.LogEvent(s.RequestID, "trips", "manifest", fmt.Sprintf("id=%d passengers=%d", tripID, len(data.Roster)))
	pdf, name, err := buildManifestPDF(data)
	if err != nil {
		return nil, "", s.fail("manifest", err)
	}
	return pdf, name, nil
}

func (s TripService) loadManifest(ctx context.Context, tripID int64) (manifestData, error) {
	var out manifestData
	db, err := resolveDB(s.DB)
	if err != nil {
		return out, err
	}

	if out.Trip, err = (repositories.TripRepository{DB: db}).GetByID(ctx, tripID); err != nil {
		return out, lookup("trip", tripID, err)
	}
	if out.Vehicle, err = (repositories.VehicleRepository{DB: db}).GetByID(ctx, out.Trip.VehicleID); err != nil {
		return out, err
	}
	if out.Driver, err = (repositories.DriverRepository{DB: db}).GetByID(ctx, out.Trip.DriverID); err != nil {
		return out, err
	}
	places := repositories.PlaceRepository{DB: db}
	if out.Origin, err = places.GetByID(ctx, out.Trip.OriginPlaceID); err != nil {
		return out, err
	}
	if out.Destination, err = places.GetByID(ctx, out.Trip.DestinationPlaceID); err != nil {
		return out, err
	}
	if out.Roster, err = (repositories.TripPassengerRepository{DB: db}).ListByTrip(ctx, tripID); err != nil {
		return out, err
	}
	return out, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func buildManifestPDF(d manifestData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Passenger Manifest", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "PASSENGER MANIFEST")
	pdf.Ln(12)

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "", 11)
	arrival := "-"
	if d.Trip.ActualArrivalAt != nil {
		arrival = utils.FormatDateTime(*d.Trip.ActualArrivalAt)
	}
	lines := []string{
		fmt.Sprintf("Trip        : #%d (%s)", d.Trip.ID, d.Trip.Status),
		fmt.Sprintf("Route       : %s, %s -> %s, %s", safe(d.Origin.Name, "-"), safe(d.Origin.City, "-"), safe(d.Destination.Name, "-"), safe(d.Destination.City, "-")),
		fmt.Sprintf("Departure   : %s", utils.FormatDateTime(d.Trip.DepartureAt)),
		fmt.Sprintf("Est. arrival: %s", utils.FormatDateTime(d.Trip.EstimatedArrivalAt)),
		fmt.Sprintf("Arrival     : %s", arrival),
		fmt.Sprintf("Vehicle     : %s %s %s", safe(d.Vehicle.Plate, "-"), d.Vehicle.Brand, d.Vehicle.Model),
		fmt.Sprintf("Driver      : %s %s (%s)", d.Driver.FirstName, d.Driver.LastName, safe(d.Driver.NationalID, "-")),
		fmt.Sprintf("Passengers  : %d of %d seats", d.Trip.ConfirmedPassengers, d.Vehicle.PassengerCapacity),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	widths := []float64{10, 80, 40, 20, 40}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"#", "Name", "National ID", "Seat", "Notes"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	if len(d.Roster) == 0 {
		pdf.CellFormat(190, 7, "No passengers registered", "1", 1, "C", false, 0, "")
	}
	for i, p := range d.Roster {
		cols := []string{fmt.Sprintf("%d", i+1), p.PassengerName, p.NationalID, safe(p.Seat, "-"), p.Notes}
		for j, c := range cols {
			pdf.CellFormat(widths[j], 7, tr(c), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if notes := strings.TrimSpace(d.Trip.Notes); notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, tr("Notes: "+notes), "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("MANIFEST_%d_%s.pdf", d.Trip.ID, utils.SafeFilenamePart(d.Vehicle.Plate))
	return buf.Bytes(), filename, nil
}
