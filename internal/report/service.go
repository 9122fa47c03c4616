package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/signintech/gopdf"

	"wellness-triage/internal/triage"
)

// Service renders a shareable care-summary PDF from the user's current
// profile and latest snapshot. The summary is informational: factors as
// recorded, bands, and the suggested next step, never a diagnosis.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// fontPaths covers the common distro locations for DejaVuSans.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

func (s *Service) RenderSummary(profile triage.ComplexityProfile, snap *triage.StateSnapshot) ([]byte, error) {
	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return nil, fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 18); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Care Summary")
	pdf.Br(26)

	if err := pdf.SetFont("DejaVu", "", 11); err != nil {
		return nil, err
	}
	pdf.Cell(nil, fmt.Sprintf("Generated: %s", time.Now().Format("02 Jan 2006 15:04")))
	pdf.Br(14)
	if !profile.UpdatedAt.IsZero() {
		pdf.Cell(nil, fmt.Sprintf("Profile last updated: %s", profile.UpdatedAt.Format("02 Jan 2006 15:04")))
		pdf.Br(20)
	}

	if snap != nil {
		if err := pdf.SetFont("DejaVu", "", 13); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Current picture")
		pdf.Br(14)
		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return nil, err
		}
		pdf.Cell(nil, fmt.Sprintf("Risk: %s   Friction: %s   Uncertainty: %s", snap.Risk, snap.Friction, snap.Uncertainty))
		pdf.Br(14)
		for _, bullet := range snap.WhatMatters {
			s.writeWrapped(&pdf, "- "+bullet)
		}
		pdf.Br(8)
	}

	if err := pdf.SetFont("DejaVu", "", 13); err != nil {
		return nil, err
	}
	pdf.Cell(nil, "Recorded factors")
	pdf.Br(14)
	if err := pdf.SetFont("DejaVu", "", 10); err != nil {
		return nil, err
	}
	factors := profile.SortedFactors()
	if len(factors) == 0 {
		pdf.Cell(nil, "- No current factors on record.")
		pdf.Br(12)
	}
	for _, f := range factors {
		line := fmt.Sprintf("- [%s] %s (confidence %.2f)", f.Domain, f.Code, f.Confidence)
		s.writeWrapped(&pdf, line)
	}
	pdf.Br(8)

	if len(profile.TopConstraints) > 0 {
		if err := pdf.SetFont("DejaVu", "", 13); err != nil {
			return nil, err
		}
		pdf.Cell(nil, "Main constraints")
		pdf.Br(14)
		if err := pdf.SetFont("DejaVu", "", 10); err != nil {
			return nil, err
		}
		for _, f := range profile.TopConstraints {
			s.writeWrapped(&pdf, fmt.Sprintf("- %s", f.Code))
		}
		pdf.Br(8)
	}

	pdf.SetY(760)
	if err := pdf.SetFont("DejaVu", "", 8); err != nil {
		return nil, err
	}
	s.writeWrapped(&pdf, "This summary reflects what you told the app. It is not a diagnosis. Share it with a pharmacist, GP, or dentist as a starting point.")

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Service) writeWrapped(pdf *gopdf.GoPdf, line string) {
	lines, _ := pdf.SplitText(line, 500)
	for _, l := range lines {
		pdf.Cell(nil, l)
		pdf.Br(12)
	}
}
