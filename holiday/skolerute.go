package holiday

import (
	"fmt"
	"io"
	"time"

	"github.com/beevik/etree"
)

// Skolerute is the content of a school-calendar feed: the free days and
// multi-day breaks a municipality publishes for a school year.
type Skolerute struct {
	SchoolYear string
	Holidays   []Holiday
	Breaks     []SchoolBreak
}

// ParseSkolerute reads a "skolerute" XML feed of the form
//
//	<skolerute skoleaar="2024/2025">
//	  <fridag dato="2025-05-17" navn="Grunnlovsdagen"/>
//	  <ferie navn="Vinterferie" fra="2025-02-17" til="2025-02-21"/>
//	</skolerute>
//
// Dates are interpreted as calendar days in loc. Every fridag entry closes
// schools.
func ParseSkolerute(r io.Reader, loc *time.Location) (Skolerute, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return Skolerute{}, fmt.Errorf("read skolerute feed: %w", err)
	}

	root := doc.SelectElement("skolerute")
	if root == nil {
		return Skolerute{}, fmt.Errorf("skolerute feed has no <skolerute> root element")
	}

	out := Skolerute{SchoolYear: root.SelectAttrValue("skoleaar", "")}

	for _, el := range root.SelectElements("fridag") {
		date, err := parseFeedDate(el, "dato", loc)
		if err != nil {
			return Skolerute{}, err
		}
		out.Holidays = append(out.Holidays, Holiday{
			Date:           date,
			Name:           el.SelectAttrValue("navn", ""),
			AffectsSchools: true,
		})
	}

	for _, el := range root.SelectElements("ferie") {
		from, err := parseFeedDate(el, "fra", loc)
		if err != nil {
			return Skolerute{}, err
		}
		to, err := parseFeedDate(el, "til", loc)
		if err != nil {
			return Skolerute{}, err
		}
		if to.Before(from) {
			return Skolerute{}, fmt.Errorf("ferie %q ends before it starts", el.SelectAttrValue("navn", ""))
		}
		out.Breaks = append(out.Breaks, SchoolBreak{
			Name: el.SelectAttrValue("navn", ""),
			From: from,
			To:   to,
		})
	}

	return out, nil
}

func parseFeedDate(el *etree.Element, attr string, loc *time.Location) (time.Time, error) {
	raw := el.SelectAttrValue(attr, "")
	if raw == "" {
		return time.Time{}, fmt.Errorf("<%s> is missing the %q attribute", el.Tag, attr)
	}
	date, err := time.ParseInLocation(dayKeyLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse <%s> %s=%q: %w", el.Tag, attr, raw, err)
	}
	return date, nil
}
