// Package document renders the printable leave request form.
package document

import (
	"fmt"
	"strings"
)

const (
	FormTitle        = "İZİN TALEP FORMU"
	ReasonFallback   = "Belirtilmemiş"
	employeeSigLabel = "Personel İmzası"
	approverSigLabel = "Yönetici İmzası"
)

type LeaveForm struct {
	FullName   string
	RegistryNo string
	Department string
	JobTitle   string
	Phone      string
	Email      string

	LeaveLabel string
	StartDate  string
	EndDate    string
	Reason     string

	// Approver and ApprovedOn are filled only for approved requests whose
	// approval note could be read back.
	Approver   string
	ApprovedOn string
}

// Filename follows <full name>_<leave label>_<registry no>.pdf with spaces
// in the label replaced by underscores.
func Filename(fullName, leaveLabel, registryNo string) string {
	return fmt.Sprintf("%s_%s_%s.pdf", fullName, strings.ReplaceAll(leaveLabel, " ", "_"), registryNo)
}

func (f LeaveForm) lines() []line {
	reason := strings.TrimSpace(f.Reason)
	if reason == "" {
		reason = ReasonFallback
	}

	out := []line{
		{text: FormTitle, size: 16, bold: true, gap: 0},
		{text: "PERSONEL BİLGİLERİ", size: 12, bold: true, gap: 36},
		{text: "Ad Soyad: " + f.FullName, size: 11, gap: 18},
		{text: "Sicil No: " + f.RegistryNo, size: 11, gap: 16},
		{text: "Departman: " + f.Department, size: 11, gap: 16},
		{text: "Görevi: " + f.JobTitle, size: 11, gap: 16},
		{text: "Cep Telefonu: " + f.Phone, size: 11, gap: 16},
		{text: "Mail Adresi: " + f.Email, size: 11, gap: 16},
		{text: "İZİN BİLGİLERİ", size: 12, bold: true, gap: 30},
		{text: "İzin Türü: " + f.LeaveLabel, size: 11, gap: 18},
		{text: "Başlangıç Tarihi: " + f.StartDate, size: 11, gap: 16},
		{text: "Bitiş Tarihi: " + f.EndDate, size: 11, gap: 16},
		{text: "İzin Nedeni: " + reason, size: 11, gap: 16},
	}

	if f.Approver != "" {
		out = append(out,
			line{text: "YÖNETİCİ ONAYI", size: 12, bold: true, gap: 30},
			line{text: fmt.Sprintf("Bu izin, %s tarafından %s tarihinde onaylanmıştır.", f.Approver, f.ApprovedOn), size: 11, gap: 18},
		)
	}

	out = append(out,
		line{text: employeeSigLabel + "                                        " + approverSigLabel, size: 11, bold: true, gap: 60},
		line{text: "______________________                                ______________________", size: 11, gap: 40},
	)
	return out
}

func RenderLeaveForm(f LeaveForm) ([]byte, error) {
	return buildPDF(f.lines())
}
