// Package pdf renders printable documents for the admin panel.
package pdf

import (
	"context"
	"io"
)

type Provider interface {
	GenerateWorkoutSheet(ctx context.Context, data WorkoutSheetData) (io.Reader, error)
	GenerateReceipt(ctx context.Context, data ReceiptData) (io.Reader, error)
}

type WorkoutSheetData struct {
	Title       string
	StudentName string
	TrainerName string
	IssuedOn    string
	Notes       string

	Exercises []WorkoutSheetExercise
}

type WorkoutSheetExercise struct {
	Name     string
	Sets     int
	Reps     string
	Load     string
	RestSecs int
	Notes    string
}

type ReceiptData struct {
	ReceiptNumber string
	StudentName   string
	PlanName      string
	Reference     string
	Amount        string
	Method        string
	PaidOn        string
	IssuedOn      string
}
