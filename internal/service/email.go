package service

import (
	"bytes"
	"html/template"
)

type productEmailData struct {
	Name        string
	ProductName string
}

var productEmailTemplate = template.Must(template.New("product").Parse(`<div style="font-family: Arial, sans-serif; color: #333;">
    <h1 style="color: #0D1B2A;">Olá, {{.Name}}!</h1>
    <p>Obrigado por sua compra! Sua <strong>{{.ProductName}}</strong> está em anexo neste e-mail.</p>
    <p>Bons estudos!</p>
    <br>
    <p>Atenciosamente,</p>
    <p>Equipe NST TREINAMENTO</p>
</div>`))

func renderProductEmail(data productEmailData) (string, error) {
	var buf bytes.Buffer
	if err := productEmailTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
