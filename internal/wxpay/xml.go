package wxpay

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
)

// Params 扁平 KV 报文，微信支付v2的唯一数据形态
type Params map[string]string

// Get 取字段值，缺失返回空串
func (p Params) Get(key string) string { return p[key] }

// Set 写入字段值
func (p Params) Set(key, value string) Params {
	p[key] = value
	return p
}

// Clone 浅拷贝
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// EncodeXML 编码为 <xml><k><![CDATA[v]]></k>...</xml> 扁平报文
// 字段按名称排序，保证同一记录编码结果稳定
func EncodeXML(p Params) []byte {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString("<xml>")
	for _, k := range keys {
		buf.WriteString("<")
		buf.WriteString(k)
		buf.WriteString(">")
		writeValue(&buf, p[k])
		buf.WriteString("</")
		buf.WriteString(k)
		buf.WriteString(">")
	}
	buf.WriteString("</xml>")
	return buf.Bytes()
}

// writeValue CDATA 包裹字段值；值本身含 "]]>" 时退回实体转义
func writeValue(buf *bytes.Buffer, v string) {
	if bytes.Contains([]byte(v), []byte("]]>")) {
		_ = xml.EscapeText(buf, []byte(v))
		return
	}
	buf.WriteString("<![CDATA[")
	buf.WriteString(v)
	buf.WriteString("]]>")
}

// DecodeXML 解析扁平报文，只接受单层叶子元素
// 非法XML或出现嵌套元素时返回 ErrMalformedPayload
func DecodeXML(data []byte) (Params, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	// 根元素
	root, err := nextStart(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformedPayload)
	}

	out := Params{}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("%w: unexpected EOF", ErrMalformedPayload)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			val, err := leafValue(dec, t.Name.Local)
			if err != nil {
				return nil, err
			}
			out[t.Name.Local] = val
		case xml.EndElement:
			// 根元素闭合，剩余内容必须只有空白
			if err := expectEOF(dec); err != nil {
				return nil, err
			}
			return out, nil
		case xml.CharData:
			// 根下的空白忽略，其余视为非法
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("%w: stray text under root", ErrMalformedPayload)
			}
		}
	}
}

// leafValue 读取叶子元素的文本内容，遇到子元素判定为非法
func leafValue(dec *xml.Decoder, name string) (string, error) {
	var buf bytes.Buffer
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			return "", fmt.Errorf("%w: nested element <%s> under <%s>", ErrMalformedPayload, t.Name.Local, name)
		case xml.EndElement:
			return buf.String(), nil
		}
	}
}

func nextStart(dec *xml.Decoder) (*xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if se, ok := tok.(xml.StartElement); ok {
			return &se, nil
		}
	}
}

func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("%w: trailing content", ErrMalformedPayload)
			}
		default:
			return fmt.Errorf("%w: trailing content", ErrMalformedPayload)
		}
	}
}
