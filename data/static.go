// Package data holds the bundled fallback dataset used when the remote
// tutoring API is unreachable: demo students, the quiz catalog, and the
// scheduled sessions.
package data

import "deutschportal/models"

var Students = []models.Student{
	{ID: 1, Name: "mohamedbouzu", Username: "alice123", Password: "password123", Plan: models.PlanGroup},
	{ID: 2, Name: "soufianelasmar", Username: "bob456", Password: "password456", Plan: models.PlanIndividual},
	{ID: 3, Name: "Charlie", Username: "charlie789", Password: "password789", Plan: models.PlanGroup},
}

var Quizzes = []models.Quiz{
	{
		ID:          1,
		Title:       "Quiz Vocabulaire A1",
		Course:      "Vocabulaire de base",
		Date:        "2024-01-15",
		Description: "Quiz sur le vocabulaire allemand de niveau A1. Testez vos connaissances sur les mots de base.",
		Plan:        models.PlanGroup,
		Duration:    10,
		Questions: []models.Question{
			{
				ID:          1,
				Text:        "Comment dit-on 'bonjour' en allemand ?",
				Options:     []string{"Hallo", "Guten Tag", "Auf Wiedersehen", "Danke"},
				Answer:      "Hallo",
				Explanation: "'Hallo' est la forme informelle de salutation en allemand.",
			},
			{
				ID:          2,
				Text:        "Que signifie 'Buch' ?",
				Options:     []string{"Livre", "Stylo", "Table", "Chaise"},
				Answer:      "Livre",
				Explanation: "'Buch' signifie 'livre' en allemand.",
			},
		},
	},
	{
		ID:          2,
		Title:       "Quiz Grammaire B1",
		Course:      "Grammaire avancée",
		Date:        "2024-01-20",
		Description: "Quiz sur la grammaire allemande de niveau B1. Articles, conjugaisons et structures complexes.",
		Plan:        models.PlanIndividual,
		Duration:    15,
		Questions: []models.Question{
			{
				ID:          1,
				Text:        "Quel est l'article défini pour 'Haus' (neutre) ?",
				Options:     []string{"der", "die", "das", "den"},
				Answer:      "das",
				Explanation: "'Haus' est un nom neutre, donc l'article défini est 'das'.",
			},
			{
				ID:          2,
				Text:        "Comment conjugue-t-on 'sein' (être) à la 3ème personne du singulier ?",
				Options:     []string{"bin", "bist", "ist", "sind"},
				Answer:      "ist",
				Explanation: "'sein' se conjugue : ich bin, du bist, er/sie/es ist, wir sind, ihr seid, sie sind.",
			},
		},
	},
}

var Sessions = []models.ScheduledSession{
	{
		ID:          1,
		Title:       "Introduction à l'allemand",
		Course:      "A1 Débutant",
		Date:        "2024-03-15 10:00",
		Description: "Session d'introduction aux bases de l'allemand : alphabet, prononciation et salutations.",
		Plan:        models.PlanGroup,
		CallLink: &models.CallLink{
			Platform:  "Zoom",
			MeetingID: "123 456 7890",
			Password:  "deutsch123",
			JoinURL:   "https://zoom.us/j/123456789?pwd=deutsch123",
		},
	},
	{
		ID:          2,
		Title:       "Les articles définis",
		Course:      "A1 Débutant",
		Date:        "2024-03-17 10:00",
		Description: "Apprentissage des articles définis en allemand : der, die, das et leurs usages.",
		Plan:        models.PlanGroup,
		CallLink: &models.CallLink{
			Platform:  "Zoom",
			MeetingID: "987 654 3210",
			Password:  "deutsch456",
			JoinURL:   "https://zoom.us/j/987654321?pwd=deutsch456",
		},
	},
}

// FindQuiz returns the catalog quiz with the given id.
func FindQuiz(id uint) (*models.Quiz, bool) {
	for i := range Quizzes {
		if Quizzes[i].ID == id {
			return &Quizzes[i], true
		}
	}
	return nil, false
}

// FindStudent returns the demo student with the given username.
func FindStudent(username string) (*models.Student, bool) {
	for i := range Students {
		if Students[i].Username == username {
			return &Students[i], true
		}
	}
	return nil, false
}

// FindSession returns the bundled session with the given id.
func FindSession(id uint) (*models.ScheduledSession, bool) {
	for i := range Sessions {
		if Sessions[i].ID == id {
			return &Sessions[i], true
		}
	}
	return nil, false
}
