// Package i18n tabla de etiquetas de campos por idioma. Las etiquetas son una
// preocupación de presentación: el esquema del catálogo es único.
package i18n

import (
	"maps"

	"golang.org/x/text/language"
)

var table = map[string]map[string]string{
	"en": {
		"model_code":          "Model Code",
		"series":              "Series",
		"category":            "Category",
		"description":         "Description",
		"application":         "Application",
		"cavity":              "Cavity",
		"material":            "Material",
		"schematic_image":     "Schematic",
		"product_image":       "Product Image",
		"specifications":      "Technical Specifications",
		"max_pressure":        "Max Pressure",
		"max_flow":            "Max Flow",
		"is_active":           "Active",
		"curve_type":          "Curve Type",
		"data_points":         "Data Points",
		"category.name":       "Category Name",
		"category.parent":     "Parent Category",
		"category.image":      "Category Image",
		"document.title":      "Title",
		"document.file":       "File",
		"document.version":    "Version",
		"document.uploaded":   "Uploaded At",
		"file_type":           "File Type",
		"file_type.datasheet": "Datasheet",
		"file_type.drawing":   "Drawing",
		"file_type.manual":    "Manual",
		"file_type.other":     "Other",
		"search":              "Search",
		"max_pressure_min":    "Min Pressure",
		"max_flow_min":        "Min Flow",
	},
	"zh": {
		"model_code":          "型号代码",
		"series":              "系列",
		"category":            "所属分类",
		"description":         "产品描述",
		"application":         "应用场景",
		"cavity":              "插孔标准",
		"material":            "材质",
		"schematic_image":     "原理图",
		"product_image":       "产品实物图",
		"specifications":      "技术参数",
		"max_pressure":        "最大压力",
		"max_flow":            "最大流量",
		"is_active":           "是否上架",
		"curve_type":          "曲线类型",
		"data_points":         "数据点",
		"category.name":       "分类名称",
		"category.parent":     "父级分类",
		"category.image":      "分类图片",
		"document.title":      "文档名称",
		"document.file":       "文件",
		"document.version":    "版本",
		"document.uploaded":   "上传时间",
		"file_type":           "文件类型",
		"file_type.datasheet": "数据表",
		"file_type.drawing":   "图纸",
		"file_type.manual":    "手册",
		"file_type.other":     "其他",
		"search":              "搜索",
		"max_pressure_min":    "最低压力",
		"max_flow_min":        "最低流量",
	},
}

// Labels resuelve etiquetas por (campo, idioma) con idioma de respaldo.
type Labels struct {
	supported []language.Tag
	matcher   language.Matcher
}

// New construye la tabla; defaultLocale ("en" o "zh") es el respaldo. Un valor desconocido usa inglés.
func New(defaultLocale string) *Labels {
	def := language.English
	if t, err := language.Parse(defaultLocale); err == nil {
		if _, ok := table[baseOf(t)]; ok {
			def = t
		}
	}
	supported := []language.Tag{def}
	for _, t := range []language.Tag{language.English, language.Chinese} {
		if baseOf(t) != baseOf(def) {
			supported = append(supported, t)
		}
	}
	return &Labels{supported: supported, matcher: language.NewMatcher(supported)}
}

// Default idioma de respaldo.
func (l *Labels) Default() language.Tag {
	return l.supported[0]
}

// Match elige el idioma soportado más cercano a la cabecera Accept-Language.
func (l *Labels) Match(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return l.Default()
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return l.Default()
	}
	_, idx, conf := l.matcher.Match(tags...)
	if conf == language.No {
		return l.Default()
	}
	return l.supported[idx]
}

// Label etiqueta del campo; cae al idioma por defecto y finalmente al nombre del campo.
func (l *Labels) Label(field string, tag language.Tag) string {
	if s, ok := table[baseOf(tag)][field]; ok {
		return s
	}
	if s, ok := table[baseOf(l.Default())][field]; ok {
		return s
	}
	return field
}

// FileType etiqueta del tipo de documento (datasheet, drawing, manual, other).
func (l *Labels) FileType(fileType string, tag language.Tag) string {
	return l.Label("file_type."+fileType, tag)
}

// Table copia de todas las etiquetas del idioma, completadas con el respaldo.
func (l *Labels) Table(tag language.Tag) map[string]string {
	out := maps.Clone(table[baseOf(l.Default())])
	maps.Copy(out, table[baseOf(tag)])
	return out
}

func baseOf(t language.Tag) string {
	b, _ := t.Base()
	return b.String()
}
