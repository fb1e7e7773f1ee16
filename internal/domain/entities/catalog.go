package entities

// ServiceOffering is a bookable facility priced by the hour
type ServiceOffering struct {
	Name        string   `json:"name"`
	HourlyPrice int64    `json:"hourly_price"`
	Unit        string   `json:"unit"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// MembershipPlan is a monthly membership tier
type MembershipPlan struct {
	Name         string   `json:"name"`
	MonthlyPrice int64    `json:"monthly_price"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Popular      bool     `json:"popular"`
}

// Catalog is the fixed price list of the facility. It is never mutated after
// construction; accessors return copies.
type Catalog struct {
	services    []ServiceOffering
	memberships []MembershipPlan
	timeSlots   []string
	durations   []int
}

// NewCatalog builds a catalog from explicit lists
func NewCatalog(services []ServiceOffering, memberships []MembershipPlan, timeSlots []string, durations []int) *Catalog {
	return &Catalog{
		services:    append([]ServiceOffering(nil), services...),
		memberships: append([]MembershipPlan(nil), memberships...),
		timeSlots:   append([]string(nil), timeSlots...),
		durations:   append([]int(nil), durations...),
	}
}

// DefaultCatalog returns the SportZone price list
func DefaultCatalog() *Catalog {
	return NewCatalog(
		[]ServiceOffering{
			{
				Name: "Basketball Court", HourlyPrice: 2500, Unit: "per hour",
				Description: "Professional basketball court with premium flooring and lighting",
				Features:    []string{"Professional court", "Equipment included", "Changing rooms", "Shower facilities"},
			},
			{
				Name: "Tennis Court", HourlyPrice: 3000, Unit: "per hour",
				Description: "Well-maintained tennis courts for singles and doubles play",
				Features:    []string{"Indoor/Outdoor options", "Racket rental", "Ball machine access", "Court lighting"},
			},
			{
				Name: "Swimming Pool", HourlyPrice: 1500, Unit: "per session",
				Description: "Olympic-sized swimming pool with lane divisions",
				Features:    []string{"Olympic size", "Lane swimming", "Swimming lessons", "Lifeguard on duty"},
			},
			{
				Name: "Football Field", HourlyPrice: 15000, Unit: "per hour",
				Description: "Full-size football field with professional grass",
				Features:    []string{"Full-size field", "Goal posts", "Changing rooms", "Equipment storage"},
			},
			{
				Name: "Badminton Court", HourlyPrice: 2000, Unit: "per hour",
				Description: "Indoor badminton courts with quality nets and flooring",
				Features:    []string{"Quality nets", "Wooden flooring", "Racket rental", "Shuttlecocks included"},
			},
			{
				Name: "Fitness Center", HourlyPrice: 3500, Unit: "per day",
				Description: "Modern gym with cardio and strength training equipment",
				Features:    []string{"Modern equipment", "Personal training", "Group classes", "Locker access"},
			},
		},
		[]MembershipPlan{
			{
				Name: "Basic", MonthlyPrice: 15000,
				Description: "Perfect for casual sports enthusiasts",
				Features: []string{
					"Access to fitness center", "Swimming pool access", "Basic equipment rental",
					"Locker room access", "1 guest pass per month",
				},
			},
			{
				Name: "Premium", MonthlyPrice: 25000, Popular: true,
				Description: "Great for regular players and fitness enthusiasts",
				Features: []string{
					"All Basic features", "Court booking priority", "Free equipment rental",
					"Group fitness classes", "Personal training discount", "3 guest passes per month",
					"Event registration discount",
				},
			},
			{
				Name: "Elite", MonthlyPrice: 40000,
				Description: "Ultimate package for serious athletes",
				Features: []string{
					"All Premium features", "Unlimited court access", "Personal training sessions",
					"Nutrition consultation", "Private locker", "Unlimited guest passes",
					"Free tournament entry", "VIP parking access",
				},
			},
		},
		[]string{
			"6:00 AM", "7:00 AM", "8:00 AM", "9:00 AM", "10:00 AM", "11:00 AM",
			"12:00 PM", "1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
			"6:00 PM", "7:00 PM", "8:00 PM", "9:00 PM",
		},
		[]int{1, 2, 3, 4},
	)
}

// Services returns the bookable facilities
func (c *Catalog) Services() []ServiceOffering {
	return append([]ServiceOffering(nil), c.services...)
}

// Memberships returns the membership plans
func (c *Catalog) Memberships() []MembershipPlan {
	return append([]MembershipPlan(nil), c.memberships...)
}

// TimeSlots returns the bookable start times
func (c *Catalog) TimeSlots() []string {
	return append([]string(nil), c.timeSlots...)
}

// Durations returns the bookable durations in hours
func (c *Catalog) Durations() []int {
	return append([]int(nil), c.durations...)
}

// ServiceByName looks up a facility by its display name
func (c *Catalog) ServiceByName(name string) (ServiceOffering, bool) {
	for _, s := range c.services {
		if s.Name == name {
			return s, true
		}
	}
	return ServiceOffering{}, false
}

// MembershipByName looks up a plan by its display name
func (c *Catalog) MembershipByName(name string) (MembershipPlan, bool) {
	for _, m := range c.memberships {
		if m.Name == name {
			return m, true
		}
	}
	return MembershipPlan{}, false
}

// HasTimeSlot reports whether label is a bookable start time
func (c *Catalog) HasTimeSlot(label string) bool {
	for _, s := range c.timeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// HasDuration reports whether hours is a bookable duration
func (c *Catalog) HasDuration(hours int) bool {
	for _, d := range c.durations {
		if d == hours {
			return true
		}
	}
	return false
}

// CalculateTotal prices a draft: the membership's monthly price plus the
// service's hourly price times the duration. Unknown names contribute
// nothing, and an empty draft costs 0.
func (c *Catalog) CalculateTotal(draft BookingDraft) int64 {
	var total int64
	if draft.MembershipType != "" {
		if plan, ok := c.MembershipByName(draft.MembershipType); ok {
			total += plan.MonthlyPrice
		}
	}
	if draft.Service != "" {
		if svc, ok := c.ServiceByName(draft.Service); ok {
			total += svc.HourlyPrice * int64(draft.Hours())
		}
	}
	return total
}
