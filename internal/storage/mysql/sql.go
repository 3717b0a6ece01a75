package mysql

// Duplicate (city, name) rows are kept as-is; `id = id` leaves RowsAffected at 0
// so the caller can tell a no-op from a fresh insert.
const insertPOISQL = `
INSERT INTO pois
  (name, address, lat, lon, tags, price_tier, duration_minutes, wheelchair_friendly, child_friendly, city)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE id = id
`

const insertRestaurantSQL = `
INSERT INTO restaurants
  (name, address, lat, lon, tags, price_tier, city)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE id = id
`

const insertBookingSQL = `
INSERT INTO bookings (start_date, end_date, location, party_type)
VALUES (?, ?, ?, ?)
`

const insertPreferenceSQL = `
INSERT INTO preferences (budget_tier, interests, mobility, dietary)
VALUES (?, ?, ?, ?)
`

const insertPlanRunSQL = `
INSERT INTO plan_runs
  (id, booking_id, preference_id, user_query, weather_summary, result_json, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// city is matched as a case-insensitive substring; the pattern is built by likePattern.
const findPOIsSQL = `
SELECT name, address, lat, lon, tags, price_tier, duration_minutes, wheelchair_friendly, child_friendly
FROM pois
WHERE city LIKE ? ESCAPE '!'
ORDER BY id
`

const findRestaurantsSQL = `
SELECT name, address, lat, lon, tags, price_tier
FROM restaurants
WHERE city LIKE ? ESCAPE '!'
ORDER BY id
`

const getPlanRunSQL = `
SELECT
  r.id,
  r.user_query,
  r.weather_summary,
  r.result_json,
  r.created_at,
  b.start_date,
  b.end_date,
  b.location,
  b.party_type,
  p.budget_tier,
  p.interests,
  p.mobility,
  p.dietary
FROM plan_runs r
JOIN bookings b    ON b.id = r.booking_id
JOIN preferences p ON p.id = r.preference_id
WHERE r.id = ?
`
