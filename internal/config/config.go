package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	PublicURL   string `env:"PUBLIC_URL"`
	StaticDir   string `env:"STATIC_DIR" envDefault:"public"`

	Database    Database
	MercadoPago MercadoPago
	Email       Email   `envPrefix:"EMAIL_"`
	Product     Product `envPrefix:"PRODUCT_"`
}

type Database struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"sqlite"` // sqlite | mysql
	URL    string `env:"DATABASE_URL"`
}

type MercadoPago struct {
	AccessToken string        `env:"MERCADO_PAGO_TOKEN,unset"`
	BaseApiURL  string        `env:"MP_BASE_API_URL" envDefault:"https://api.mercadopago.com"`
	Timeout     time.Duration `env:"MP_TIMEOUT" envDefault:"30s"`
}

type Email struct {
	APIKey   string `env:"API_KEY,unset"`
	From     string `env:"FROM"`
	FromName string `env:"FROM_NAME" envDefault:"Projeto NST TREINAMENTO"`
}

type Product struct {
	Tag            string `env:"TAG" envDefault:"apostila"`
	Name           string `env:"NAME" envDefault:"Apostila Digital - Módulo I"`
	Description    string `env:"DESCRIPTION" envDefault:"Apostila Digital - Módulo I: Luto Mal Resolvido"`
	Price          string `env:"PRICE" envDefault:"19.90"`
	FilePath       string `env:"FILE_PATH" envDefault:"apostila.pdf"`
	AttachmentName string `env:"ATTACHMENT_NAME" envDefault:"Apostila - Luto Mal Resolvido.pdf"`
	EmailSubject   string `env:"EMAIL_SUBJECT" envDefault:"Sua Apostila chegou! - Módulo I: Luto Mal Resolvido"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"3001"`
}
