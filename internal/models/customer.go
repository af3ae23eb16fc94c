package models

import "time"

type Customer struct {
	ID                int64     `json:"customer_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	MemberCode        string    `json:"member_code"`
	Age               int       `json:"age"`
	AgeGroup          string    `json:"age_group"`
	Gender            string    `json:"gender"`
	VisitFrequency    string    `json:"visit_frequency"`
	AverageOrderValue float64   `json:"average_order_value"`
	RegistrationDate  time.Time `json:"registration_date"`
	VisitCount        int       `json:"visit_count"`
	IsActive          bool      `json:"is_active"`
}
