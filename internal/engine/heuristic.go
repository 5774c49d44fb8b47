package engine

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/Palash-oss/TIMETABLE/internal/models"
)

// draftPlaceholder fills faculty or room fields when no matching record
// exists; drafts are advisory and never persisted.
const draftPlaceholder = "TBA"

// categoryPriority orders course categories from most to least constrained
// when filling draft days.
var categoryPriority = []models.CourseCategory{
	models.CategoryMajor,
	models.CategoryAEC,
	models.CategorySEC,
	models.CategoryMDC,
	models.CategoryMinor,
	models.CategoryVAC,
	models.CategoryProject,
}

// HeuristicParams tunes the draft policy.
type HeuristicParams struct {
	// MinPeriodsPerDay and MaxPeriodsPerDay bound how many periods a draft
	// day schedules.
	MinPeriodsPerDay int
	MaxPeriodsPerDay int
	// MiddayDropChance is the probability that the midday period is left
	// free on a given day.
	MiddayDropChance float64
	// MaxRepeatsPerDay caps how often one course repeats within a day
	// before the picker falls back to the full pool.
	MaxRepeatsPerDay int
}

// DefaultHeuristicParams returns the standard draft policy.
func DefaultHeuristicParams() HeuristicParams {
	return HeuristicParams{
		MinPeriodsPerDay: 4,
		MaxPeriodsPerDay: 6,
		MiddayDropChance: 0.7,
		MaxRepeatsPerDay: 2,
	}
}

// DraftEntry is one advisory session in a draft schedule.
type DraftEntry struct {
	DayOfWeek   int                   `json:"day_of_week"`
	Day         string                `json:"day"`
	StartTime   string                `json:"start_time"`
	EndTime     string                `json:"end_time"`
	CourseCode  string                `json:"course_code"`
	CourseName  string                `json:"course_name"`
	Category    models.CourseCategory `json:"category"`
	Credits     int                   `json:"credits"`
	FacultyName string                `json:"faculty_name"`
	RoomNumber  string                `json:"room_number"`
	SkillBased  bool                  `json:"skill_based"`
}

// DraftSchedule is a fast heuristic timetable. It favours plausibility over
// hard guarantees: faculty and room exclusivity are not enforced and missing
// matches are filled with a placeholder.
type DraftSchedule struct {
	Semester     string       `json:"semester"`
	AcademicYear string       `json:"academic_year"`
	Seed         int64        `json:"seed"`
	Entries      []DraftEntry `json:"entries"`
}

// HeuristicSolver builds draft schedules from its own seeded random source,
// so equal seeds over equal problems yield equal drafts.
type HeuristicSolver struct {
	params HeuristicParams
	seed   int64
	logger *zap.Logger
}

// NewHeuristicSolver returns a draft solver. A zero seed picks one from the
// clock.
func NewHeuristicSolver(params HeuristicParams, seed int64, logger *zap.Logger) *HeuristicSolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if params.MinPeriodsPerDay <= 0 {
		params = DefaultHeuristicParams()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &HeuristicSolver{params: params, seed: seed, logger: logger}
}

// Draft assembles an advisory weekly schedule for the problem's courses. It
// runs independently of the exact pipeline and needs no faculty links:
// faculty are matched by department and expertise keywords instead.
func (h *HeuristicSolver) Draft(p *Problem) *DraftSchedule {
	rng := rand.New(rand.NewSource(h.seed))
	draft := &DraftSchedule{
		Semester:     p.Spec.Semester,
		AcademicYear: p.Spec.AcademicYear,
		Seed:         h.seed,
	}

	pool := h.buildPool(p.Courses, rng)
	if len(pool) == 0 {
		return draft
	}

	slotsByDay := lo.GroupBy(p.Slots, func(s models.TimeSlot) int { return s.DayOfWeek })
	days := lo.Keys(slotsByDay)
	sort.Ints(days)

	for _, day := range days {
		periods := distinctPeriods(slotsByDay[day])
		if len(periods) == 0 {
			continue
		}
		chosen := h.pickPeriods(periods, rng)
		usage := map[string]int{}
		for _, period := range chosen {
			course := h.pickCourse(pool, usage, rng)
			usage[course.Code]++
			draft.Entries = append(draft.Entries, DraftEntry{
				DayOfWeek:   day,
				Day:         models.DayName(day),
				StartTime:   period.Start,
				EndTime:     period.End,
				CourseCode:  course.Code,
				CourseName:  course.Name,
				Category:    course.Category,
				Credits:     course.Credits,
				FacultyName: matchFaculty(course, p.Faculty),
				RoomNumber:  matchRoom(course, p.Rooms),
				SkillBased:  course.SkillBased,
			})
		}
	}

	h.logger.Info("draft schedule built",
		zap.String("key", p.Spec.Key()),
		zap.Int64("seed", h.seed),
		zap.Int("entries", len(draft.Entries)),
	)
	return draft
}

// buildPool orders courses by category priority with random jitter inside a
// category, then repeats each course once per credit so heavier courses
// surface more often.
func (h *HeuristicSolver) buildPool(courses []models.Course, rng *rand.Rand) []models.Course {
	rank := map[models.CourseCategory]int{}
	for i, cat := range categoryPriority {
		rank[cat] = i
	}
	ordered := append([]models.Course(nil), courses...)
	jitter := make(map[string]float64, len(ordered))
	for _, c := range ordered {
		jitter[c.ID] = rng.Float64()
	}
	sort.SliceStable(ordered, func(a, b int) bool {
		ra, ok := rank[ordered[a].Category]
		if !ok {
			ra = len(categoryPriority)
		}
		rb, ok := rank[ordered[b].Category]
		if !ok {
			rb = len(categoryPriority)
		}
		if ra != rb {
			return ra < rb
		}
		return jitter[ordered[a].ID] < jitter[ordered[b].ID]
	})

	var pool []models.Course
	for _, c := range ordered {
		repeats := c.Credits
		if repeats < 1 {
			repeats = 1
		}
		for r := 0; r < repeats; r++ {
			pool = append(pool, c)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool
}

// pickPeriods samples the day's periods, sorts them back into clock order and
// sometimes frees the midday period.
func (h *HeuristicSolver) pickPeriods(periods []models.TimeSlot, rng *rand.Rand) []models.TimeSlot {
	max := h.params.MaxPeriodsPerDay
	if max > len(periods) {
		max = len(periods)
	}
	min := h.params.MinPeriodsPerDay
	if min > max {
		min = max
	}
	n := min
	if max > min {
		n = min + rng.Intn(max-min+1)
	}

	sampled := append([]models.TimeSlot(nil), periods...)
	rng.Shuffle(len(sampled), func(i, j int) { sampled[i], sampled[j] = sampled[j], sampled[i] })
	sampled = sampled[:n]
	sort.Slice(sampled, func(a, b int) bool { return sampled[a].Start < sampled[b].Start })

	if h.params.MiddayDropChance > 0 && rng.Float64() < h.params.MiddayDropChance {
		sampled = lo.Filter(sampled, func(s models.TimeSlot, _ int) bool {
			return s.Start != "12:00"
		})
	}
	return sampled
}

// pickCourse draws from the pool, preferring courses not yet at the per-day
// repeat cap.
func (h *HeuristicSolver) pickCourse(pool []models.Course, usage map[string]int, rng *rand.Rand) models.Course {
	usable := lo.Filter(pool, func(c models.Course, _ int) bool {
		return usage[c.Code] < h.params.MaxRepeatsPerDay
	})
	if len(usable) == 0 {
		usable = pool
	}
	return usable[rng.Intn(len(usable))]
}

// distinctPeriods deduplicates a day's slots by start time, keeping clock
// order.
func distinctPeriods(slots []models.TimeSlot) []models.TimeSlot {
	seen := map[string]bool{}
	var periods []models.TimeSlot
	for _, s := range slots {
		if seen[s.Start] {
			continue
		}
		seen[s.Start] = true
		periods = append(periods, s)
	}
	sort.Slice(periods, func(a, b int) bool { return periods[a].Start < periods[b].Start })
	return periods
}

// matchFaculty finds a plausible instructor: same department as the course
// code's letter prefix, or an expertise keyword appearing in the course name.
func matchFaculty(course models.Course, faculty []models.Faculty) string {
	prefix := codePrefix(course.Code)
	for _, member := range faculty {
		if prefix != "" && strings.EqualFold(member.Department, prefix) {
			return member.Name
		}
		for _, topic := range member.Expertise {
			if topic != "" && strings.Contains(strings.ToLower(course.Name), strings.ToLower(topic)) {
				return member.Name
			}
		}
	}
	if len(faculty) > 0 {
		return faculty[0].Name
	}
	return draftPlaceholder
}

// matchRoom prefers a lab for lab-bound courses and a non-lab room otherwise.
func matchRoom(course models.Course, rooms []models.Room) string {
	wantLab := course.RequiresLab() || strings.Contains(strings.ToLower(course.Name), "lab")
	for _, room := range rooms {
		if (room.Type == models.RoomLab) == wantLab {
			return room.Number
		}
	}
	if len(rooms) > 0 {
		return rooms[0].Number
	}
	return draftPlaceholder
}

// codePrefix returns the leading letters of a course code, e.g. "CS" from
// "CS101".
func codePrefix(code string) string {
	for i, r := range code {
		if r >= '0' && r <= '9' {
			return code[:i]
		}
	}
	return code
}
