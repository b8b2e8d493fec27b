package constants

const (
	ROLE_ADMIN = "ADMIN"
	ROLE_STAFF = "STAFF"
)

// Response messages
const (
	ERROR_INPUT                = "Données invalides"
	ERROR_INTERNAL_ERROR       = "Une erreur est survenue, veuillez réessayer"
	ERROR_PARSE_DATA_TO_LOCALS = "Impossible de lire les données de la requête"
	DATA_INPUT_IS_NOT_NUMBER   = "L'identifiant doit être un nombre"
	VALIDATION_FAILED          = "Validation échouée"
	NOT_FOUND                  = "Élément introuvable"
	FORBIDDEN                  = "Accès réservé à l'administrateur"

	MISSING_LOGIN_INPUT = "Nom d'utilisateur et mot de passe requis"
	INVALID_USERNAME    = "Nom d'utilisateur inconnu"
	INVALID_PASSWORD    = "Mot de passe incorrect"
	ACCOUNT_NOT_ACTIVE  = "Compte désactivé"

	BOOKING_SUCCESS       = "Votre réservation a bien été enregistrée"
	BOOKING_NO_ROOM       = "Désolé, il n'y a plus de place pour ce créneau"
	BOOKING_FAILED        = "Impossible d'enregistrer la réservation, veuillez réessayer plus tard"
	BOOKING_RATE_LIMITED  = "Trop de tentatives, veuillez patienter"
	UPLOAD_FAILED         = "Échec de l'envoi de l'image"
	PROFILE_PARTIAL_SAVED = "Profil partiellement enregistré"
)

// RoomCapacity is the maximum total party size for a single date and slot.
const RoomCapacity = 20

const (
	MinPartySize = 1
	MaxPartySize = RoomCapacity
)

const DateLayout = "2006-01-02"

// Slots are the reservation start times offered each day.
var Slots = []string{"12:00", "12:30", "13:00", "13:30", "19:00", "19:30", "20:00", "20:30", "21:00"}

const (
	RESERVATION_PENDING   = "pending"
	RESERVATION_CONFIRMED = "confirmed"
)

// MenuCategories in display order.
var MenuCategories = []string{"Apéritifs", "Entrées", "Plats", "Desserts", "Boissons"}

// Tables
const (
	TABLE_RESERVATIONS      = "reservations"
	TABLE_MENU_ITEMS        = "menu_items"
	TABLE_EVENTS            = "events"
	TABLE_SITE_CONFIG       = "site_config"
	TABLE_SITE_SETTINGS     = "site_settings"
	TABLE_PROFILES          = "profiles"
	TABLE_FEATURES          = "features"
	TABLE_EDITABLE_ELEMENTS = "editable_elements"
)

// Storage buckets
const (
	BUCKET_EVENT_IMAGES    = "event_images"
	BUCKET_SITE_IMAGES     = "site_images"
	BUCKET_HOMEPAGE_IMAGES = "homepage-images"
)

var Buckets = []string{BUCKET_EVENT_IMAGES, BUCKET_SITE_IMAGES, BUCKET_HOMEPAGE_IMAGES}

// Change feed channels
const (
	CHANNEL_SITE_CONFIG = "site_config"
	CHANNEL_FEATURES    = "features"
)

const FEATURE_CUSTOMIZATION = "customization"

const (
	SETTING_TYPE_COLORS = "colors"
	SETTING_TYPE_IMAGES = "images"
)
