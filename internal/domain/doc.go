// Package domain models Buffalo National River float conditions.
//
// # Data Source
//
// River levels come from the USGS Instantaneous Values web service at
// https://waterservices.usgs.gov/nwis/iv, parameter code 00065 (gage height
// in feet). Five gauges along the Buffalo River are tracked:
//
//	pruitt        07055875   Buffalo River near Pruitt
//	gilbert       07056000   Buffalo River near Gilbert
//	rush          07055646   Buffalo River near Rush
//	carver        07055660   Buffalo River near Carver
//	buffalo_city  07056700   Buffalo River near Buffalo City
//
// # Floatability
//
// A gauge is floatable when its level falls inside the recreationally safe
// range [4.8 ft, 6.6 ft]. Below the range the river is "low" (dragging
// bottom, portages likely); above it the river is "high" (swift water,
// unsafe for open canoes). Status is always derived from the level — it is
// never stored independently, so it cannot drift out of sync with the
// reading that produced it.
//
// # Trip Heuristics
//
// EstimateTrip converts a river section and current conditions into a float
// plan using outfitter rules of thumb: paddling pace is 0.4 hours per mile,
// adjusted for water speed (faster above 5.5 ft, slower below 5.0 ft),
// paddler experience, and group size. Rental pricing assumes two paddlers
// per canoe at $45 per boat, with a flat shuttle fee that steps up for
// groups larger than six. These level thresholds are fixed constants; they
// are not derived from section level bounds.
//
// # Fallback Data
//
// When the USGS or weather services are unreachable, callers substitute the
// deterministic fallback datasets in this package. Each gauge gets a
// visually distinct 14-day series so charts stay plausible offline; the
// numbers carry no hydrological meaning.
package domain
