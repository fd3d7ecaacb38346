package models

// Student defines the student record model based on the 'student' table
type Student struct {
	ID     int64  `json:"id" db:"id"` // Unique identifier, store-assigned and immutable
	Name   string `json:"name" db:"name"`
	Age    int    `json:"age" db:"age"`
	Course string `json:"course" db:"course"`
	Year   int    `json:"year" db:"year"`
	Gender string `json:"gender" db:"gender"`
}
