package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PagesHandler serves the marketing pages as JSON content for the frontend
// to render. The copy mirrors the public site.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

func (h *PagesHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":    "Bienvenue sur DeutschMohammed",
		"subtitle": "Apprenez l'allemand facilement depuis chez vous avec un professeur expérimenté",
		"features": []gin.H{
			{"title": "Sessions en direct", "text": "Cours interactifs en ligne avec Zoom"},
			{"title": "Emploi du temps flexible", "text": "Choisissez les horaires qui vous conviennent"},
			{"title": "Quiz interactifs", "text": "Testez vos connaissances avec nos quiz"},
			{"title": "Support personnalisé", "text": "Accompagnement individuel ou en groupe"},
		},
	})
}

func (h *PagesHandler) Courses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": "Nos Plans d'Apprentissage",
		"plans": []gin.H{
			{
				"name":  "Groupe",
				"price": "300 DH",
				"tag":   "Idéal pour débuter",
				"features": []string{
					"4 sessions/mois (2h par session)",
					"Groupes de 4-6 étudiants",
					"Niveau A1 à B2",
					"Matériel pédagogique inclus",
					"Accès aux quiz interactifs",
					"Support par email",
				},
			},
			{
				"name":  "Individuel",
				"price": "1500 DH",
				"tag":   "Le plus populaire",
				"features": []string{
					"8 sessions/mois (1h par session)",
					"Cours personnalisés 1 sur 1",
					"Tous niveaux (A1 à C1)",
					"Programme sur mesure",
					"Accès complet aux ressources",
					"Support prioritaire",
					"Corrections détaillées",
				},
			},
			{
				"name":  "Entreprise",
				"price": "Sur mesure",
				"tag":   "Pour les entreprises",
				"features": []string{
					"Formation pour équipes",
					"Horaires flexibles",
					"Programmes spécifiques",
					"Rapports de progression",
					"Certification officielle",
					"Support dédié",
				},
			},
		},
	})
}

func (h *PagesHandler) About(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":   "À propos de DeutschMohammed",
		"teacher": "Professeur d'allemand certifié avec plus de 10 ans d'expérience dans l'enseignement des langues.",
		"mission": "Rendre l'apprentissage de l'allemand accessible, efficace et agréable pour tous, grâce à des méthodes pédagogiques modernes et adaptées à chaque apprenant.",
		"stats": []gin.H{
			{"value": "500+", "label": "Étudiants formés"},
			{"value": "98%", "label": "Taux de satisfaction"},
			{"value": "10+", "label": "Années d'expérience"},
			{"value": "A1-C1", "label": "Tous niveaux enseignés"},
		},
	})
}

func (h *PagesHandler) Contact(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"email":    "contact@deutschmohammed.com",
		"phone":    "+212 6 XX XX XX XX",
		"location": "Maroc - Cours 100% en ligne",
		"faq": []gin.H{
			{"q": "Comment commencer les cours ?", "a": "Contactez-nous pour un premier entretien gratuit, puis choisissez votre plan et commencez immédiatement."},
			{"q": "Quel matériel est nécessaire ?", "a": "Un ordinateur avec webcam, une connexion internet stable et un casque avec microphone."},
			{"q": "Puis-je changer d'horaire ?", "a": "Oui, les horaires sont flexibles et peuvent être ajustés selon vos disponibilités."},
			{"q": "Y a-t-il un essai gratuit ?", "a": "Oui, nous offrons une première session d'essai gratuite pour découvrir notre méthode."},
		},
	})
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SubmitContact accepts the contact form. There is no mail backend; the
// message is logged for the teacher to pick up.
func (h *PagesHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Contact form submitted by %s <%s> (%s): %s", req.Name, req.Email, req.Subject, req.Message)
	c.JSON(http.StatusOK, gin.H{"message": "Votre message a été envoyé avec succès !"})
}
